package models

// Identity is a secret persona assigned to a player by another player
type Identity struct {
	// DisplayName is the primary name of the identity
	DisplayName string

	// Aliases are alternate names that also count as correct guesses
	Aliases []string

	// ImageRef is an optional reference to a picture for the identity
	ImageRef string
}

// Candidates returns every name a guess is checked against
func (i *Identity) Candidates() []string {
	out := make([]string, 0, len(i.Aliases)+1)
	out = append(out, i.DisplayName)
	out = append(out, i.Aliases...)
	return out
}
