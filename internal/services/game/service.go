package game

import (
	"context"
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"sync"
	"time"

	"github.com/tmcfarlane/whoami/internal/models"
)

// roomState pairs a room with the runtime pieces that never leave the
// service: its lock and its turn timer. Every mutating operation on a room
// happens with mu held, so external requests and the room's own timer are
// applied one at a time.
type roomState struct {
	mu    sync.Mutex
	room  *models.Room
	timer *time.Timer
}

// service implements the Service interface
type service struct {
	config *Config

	notifierMu sync.RWMutex
	notifier   TimeoutNotifier

	mu          sync.RWMutex
	rooms       map[string]*roomState
	playerRooms map[string]string
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}

	if cfg.ArchiveRepo == nil {
		return nil, ErrNilArchiveRepo
	}

	// Apply default settings where not provided
	if cfg.TurnDuration <= 0 {
		cfg.TurnDuration = DefaultTurnDuration
	}
	if cfg.GuessLockDuration <= 0 {
		cfg.GuessLockDuration = DefaultGuessLockDuration
	}
	if cfg.MinPlayers <= 0 {
		cfg.MinPlayers = DefaultMinPlayers
	}
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}

	return &service{
		config:      cfg,
		rooms:       make(map[string]*roomState),
		playerRooms: make(map[string]string),
	}, nil
}

// SetNotifier registers the receiver for timeout-originated turn advances.
// The transport layer is constructed after the service, so this cannot be a
// Config field.
func (s *service) SetNotifier(n TimeoutNotifier) {
	s.notifierMu.Lock()
	defer s.notifierMu.Unlock()
	s.notifier = n
}

func (s *service) getNotifier() TimeoutNotifier {
	s.notifierMu.RLock()
	defer s.notifierMu.RUnlock()
	return s.notifier
}

// newRoomCode generates a random room code
func newRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(roomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
			continue
		}
		code[i] = roomCodeChars[n.Int64()]
	}
	return string(code)
}

// uniqueRoomCodeLocked retries code generation until the code is unused.
// Assumes s.mu is held.
func (s *service) uniqueRoomCodeLocked() string {
	for {
		code := newRoomCode()
		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

// CreateRoom creates a new room with the caller as host
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.HostID == "" {
		return nil, ErrInvalidInput
	}

	// A player opening a new room implicitly leaves whatever room they
	// were in
	if _, err := s.LeaveRoom(ctx, &LeaveRoomInput{PlayerID: input.HostID}); err != nil && err != ErrPlayerNotInRoom {
		return nil, err
	}

	now := s.config.Clock.Now()

	host := &models.Player{
		ID:        input.HostID,
		Name:      input.HostName,
		AvatarRef: input.AvatarRef,
		Connected: true,
		JoinedAt:  now,
	}

	room := &models.Room{
		HostID:  input.HostID,
		Phase:   models.PhaseLobby,
		Order:   []string{input.HostID},
		Players: map[string]*models.Player{input.HostID: host},
		Settings: models.Settings{
			TurnDuration:      s.config.TurnDuration,
			GuessLockDuration: s.config.GuessLockDuration,
			MinPlayers:        s.config.MinPlayers,
			MaxPlayers:        s.config.MaxPlayers,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	room.Code = s.uniqueRoomCodeLocked()
	s.rooms[room.Code] = &roomState{room: room}
	s.playerRooms[input.HostID] = room.Code
	s.mu.Unlock()

	return &CreateRoomOutput{
		RoomCode: room.Code,
		Room:     snapshotRoom(room),
	}, nil
}

// JoinRoom adds a player to an existing room, or reconnects a member
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrPlayerNotInRoom
	}

	s.mu.RLock()
	rs, ok := s.rooms[input.RoomCode]
	currentCode, inRoom := s.playerRooms[input.PlayerID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrRoomNotFound
	}

	// Joining a different room implicitly leaves the current one
	if inRoom && currentCode != input.RoomCode {
		if _, err := s.LeaveRoom(ctx, &LeaveRoomInput{PlayerID: input.PlayerID}); err != nil && err != ErrPlayerNotInRoom {
			return nil, err
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	room := rs.room
	now := s.config.Clock.Now()

	// A known member presenting the same ID is reconnecting, not joining
	if player, exists := room.Players[input.PlayerID]; exists {
		player.Connected = true
		if input.PlayerName != "" {
			player.Name = input.PlayerName
		}
		room.UpdatedAt = now

		return &JoinRoomOutput{
			Room:     snapshotRoom(room),
			Rejoined: true,
		}, nil
	}

	if room.Phase != models.PhaseLobby {
		return nil, ErrJoinClosed
	}

	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, ErrRoomFull
	}

	player := &models.Player{
		ID:        input.PlayerID,
		Name:      input.PlayerName,
		AvatarRef: input.AvatarRef,
		Connected: true,
		JoinedAt:  now,
	}

	room.Players[input.PlayerID] = player
	room.Order = append(room.Order, input.PlayerID)
	room.UpdatedAt = now

	s.mu.Lock()
	s.playerRooms[input.PlayerID] = room.Code
	s.mu.Unlock()

	return &JoinRoomOutput{
		Room: snapshotRoom(room),
	}, nil
}

// LeaveRoom removes a player from their room, or flags them disconnected
// while a game is in progress
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrPlayerNotInRoom
	}

	out, err := s.departPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &LeaveRoomOutput{
		RoomCode:     out.RoomCode,
		Room:         out.Room,
		Removed:      out.Removed,
		RoomClosed:   out.RoomClosed,
		NewHostID:    out.NewHostID,
		TurnAdvanced: out.TurnAdvanced,
		Finished:     out.Finished,
	}, nil
}

// HandleDisconnect processes a dropped connection. Departure semantics are
// the same as an explicit leave: removal outside of play, a connected flag
// flip during play.
func (s *service) HandleDisconnect(ctx context.Context, input *HandleDisconnectInput) (*HandleDisconnectOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrPlayerNotInRoom
	}

	return s.departPlayer(ctx, input.PlayerID)
}

// departPlayer applies the phase-dependent departure rules for a player
func (s *service) departPlayer(ctx context.Context, playerID string) (*HandleDisconnectOutput, error) {
	s.mu.RLock()
	code, ok := s.playerRooms[playerID]
	var rs *roomState
	if ok {
		rs = s.rooms[code]
	}
	s.mu.RUnlock()

	if !ok || rs == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	room := rs.room
	player, exists := room.Players[playerID]
	if !exists {
		return nil, ErrPlayerNotInRoom
	}

	now := s.config.Clock.Now()
	room.UpdatedAt = now

	out := &HandleDisconnectOutput{RoomCode: room.Code}

	if room.Phase == models.PhasePlaying {
		// The player entry stays so the turn order and target chain keep
		// their shape; only the connected flag flips.
		player.Connected = false

		out.NewHostID = s.transferHostLocked(room, playerID)

		if room.Turn != nil && room.Turn.GuesserID == playerID {
			finished := s.advanceTurnLocked(ctx, rs)
			out.TurnAdvanced = true
			out.Finished = finished
		} else if room.Turn != nil && !s.anyEligibleLocked(room) {
			// The last eligible guesser just dropped out from under an
			// ineligible turn holder; end the game rather than wait for
			// a timeout nobody can answer.
			s.finishRoomLocked(ctx, rs)
			out.Finished = true
		}

		out.Room = snapshotRoom(room)
		return out, nil
	}

	// Host transfer runs before the order sequence is compacted so the
	// departing host's successor can still be found
	out.NewHostID = s.transferHostLocked(room, playerID)
	s.removePlayerLocked(room, playerID)
	out.Removed = true

	s.mu.Lock()
	delete(s.playerRooms, playerID)
	s.mu.Unlock()

	if len(room.Players) == 0 || len(room.Order) == 0 {
		s.destroyRoomLocked(rs)
		out.RoomClosed = true
		return out, nil
	}

	out.Room = snapshotRoom(room)
	return out, nil
}

// removePlayerLocked deletes a player entry, compacts the order sequence,
// and repairs the target chain when one exists. Assumes the room lock is
// held and the phase is not PLAYING.
func (s *service) removePlayerLocked(room *models.Room, playerID string) {
	leaver := room.Players[playerID]
	delete(room.Players, playerID)

	// Compact the order sequence
	order := room.Order[:0]
	for _, id := range room.Order {
		if id != playerID {
			order = append(order, id)
		}
	}
	room.Order = order

	if room.Phase != models.PhaseAssignment || leaver == nil {
		return
	}

	// Re-close the target cycle around the gap: whoever targeted the
	// leaver now targets the leaver's old target and must write a new
	// identity for them. An identity the leaver had already written
	// leaves with its author.
	if leaver.HasSubmitted {
		if target, ok := room.Players[leaver.TargetID]; ok {
			target.Identity = nil
		}
	}

	for _, p := range room.Players {
		if p.TargetID == playerID {
			p.TargetID = leaver.TargetID
			p.HasSubmitted = false
			break
		}
	}

	// A chain needs at least two players to mean anything
	if len(room.Players) == 1 {
		for _, p := range room.Players {
			p.TargetID = ""
			p.Identity = nil
			p.HasSubmitted = false
		}
	}
}

// transferHostLocked hands host role to the departing player's successor in
// the order sequence when the departing player held it. Must run while the
// departing player is still in order. Returns the new host ID, or empty when
// the host did not change. Assumes the room lock is held.
func (s *service) transferHostLocked(room *models.Room, departedID string) string {
	if room.HostID != departedID {
		return ""
	}

	for i, id := range room.Order {
		if id != departedID {
			continue
		}

		newHost := room.Order[(i+1)%len(room.Order)]
		if newHost == departedID {
			// alone in the room
			return ""
		}

		room.HostID = newHost
		return newHost
	}

	return ""
}

// destroyRoomLocked releases a room and its timer. Assumes the room lock is
// held.
func (s *service) destroyRoomLocked(rs *roomState) {
	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, rs.room.Code)
	for playerID, code := range s.playerRooms {
		if code == rs.room.Code {
			delete(s.playerRooms, playerID)
		}
	}
}

// GetRoom looks up the room a player belongs to
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, ErrPlayerNotInRoom
	}

	s.mu.RLock()
	code, ok := s.playerRooms[input.PlayerID]
	var rs *roomState
	if ok {
		rs = s.rooms[code]
	}
	s.mu.RUnlock()

	if !ok || rs == nil {
		return nil, ErrPlayerNotInRoom
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	return &GetRoomOutput{
		Room: snapshotRoom(rs.room),
	}, nil
}

// lockedRoomForPlayer resolves a player to their room state and acquires the
// room lock. The caller must release it.
func (s *service) lockedRoomForPlayer(playerID string) (*roomState, *models.Player, error) {
	if playerID == "" {
		return nil, nil, ErrPlayerNotInRoom
	}

	s.mu.RLock()
	code, ok := s.playerRooms[playerID]
	var rs *roomState
	if ok {
		rs = s.rooms[code]
	}
	s.mu.RUnlock()

	if !ok || rs == nil {
		return nil, nil, ErrPlayerNotInRoom
	}

	rs.mu.Lock()

	player, exists := rs.room.Players[playerID]
	if !exists {
		rs.mu.Unlock()
		return nil, nil, ErrPlayerNotInRoom
	}

	return rs, player, nil
}
