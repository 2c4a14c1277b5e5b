package ws

// HandlerError is a custom error type for websocket handler errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig      HandlerError = "config cannot be nil"
	ErrNilGameService HandlerError = "game service cannot be nil"
)
