package ws

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/tmcfarlane/whoami/internal/models"
	"github.com/tmcfarlane/whoami/internal/services/game"
	"github.com/tmcfarlane/whoami/internal/services/messaging"
)

// playerCookieName carries the stable player identity across reconnects
const playerCookieName = "whoami_id"

// sendBuffer bounds how far a slow client may fall behind before it is
// dropped
const sendBuffer = 8

// Config holds configuration for the websocket handler
type Config struct {
	// Service dependencies
	GameService game.Service

	// Messaging provides flavor text for announcements. Optional; without
	// it events go out bare.
	Messaging messaging.Service
}

// Handler owns the websocket connections. There is at most one live
// connection per player ID; a newer connection displaces the older one.
type Handler struct {
	service   game.Service
	messaging messaging.Service

	mu      sync.RWMutex
	clients map[string]*client
}

// client is one player's connection. All writes go through the send
// channel so the write pump is the only goroutine touching the conn for
// output. The closed flag guards the channel: broadcasters run without the
// handler lock, so a client they still hold may be shut down under them.
type client struct {
	playerID string
	conn     *websocket.Conn

	mu     sync.Mutex
	send   chan any
	closed bool
}

// enqueue queues a message without blocking. It is a no-op on a client that
// has been shut down, and a client that cannot keep up loses the message and
// will resync from the next full room state.
func (c *client) enqueue(msg any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- msg:
	default:
	}
}

// shutdown closes the send channel exactly once, ending the write pump.
// Safe against concurrent enqueues.
func (c *client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// New creates a new websocket handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	return &Handler{
		service:   cfg.GameService,
		messaging: cfg.Messaging,
		clients:   make(map[string]*client),
	}, nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// getOrSetPlayerID reads the player identity cookie, minting one when the
// client has none yet
func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := crand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// ServeWS upgrades the connection and runs the read loop until the client
// goes away
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	playerID := getOrSetPlayerID(w, r)
	if playerID == "" {
		http.Error(w, "unable to assign player id", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}

	c := &client{
		playerID: playerID,
		conn:     conn,
		send:     make(chan any, sendBuffer),
	}

	h.register(c)

	c.enqueue(WelcomeMessage{Type: MsgWelcome, PlayerID: playerID})

	// A reconnecting member gets their room pushed immediately
	if output, err := h.service.GetRoom(r.Context(), &game.GetRoomInput{PlayerID: playerID}); err == nil {
		c.enqueue(RoomStateMessage{
			Type: MsgRoomState,
			Room: game.ProjectRoom(output.Room, playerID),
		})
	}

	go c.writePump()
	h.readPump(c)
}

// register installs a client, displacing any previous connection for the
// same player
func (h *Handler) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[c.playerID]; ok {
		old.shutdown()
		if old.conn != nil {
			_ = old.conn.Close()
		}
	}
	h.clients[c.playerID] = c
}

// drop removes a client if it is still the registered connection for its
// player. A displaced connection must not unregister its replacement.
func (h *Handler) drop(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[c.playerID]; ok && current == c {
		delete(h.clients, c.playerID)
		c.shutdown()
		return true
	}
	return false
}

func (h *Handler) lookup(playerID string) *client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[playerID]
}

func (h *Handler) readPump(c *client) {
	defer func() {
		_ = c.conn.Close()
		if !h.drop(c) {
			// displaced by a newer connection; the player is still here
			return
		}

		output, err := h.service.HandleDisconnect(context.Background(), &game.HandleDisconnectInput{
			PlayerID: c.playerID,
		})
		if err != nil || output.Room == nil {
			return
		}
		h.broadcastRoom(output.Room)
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.handleMessage(context.Background(), c, &msg)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// trySend queues a message for a client that may already be gone
func (h *Handler) trySend(c *client, msg any) {
	if c == nil {
		return
	}
	c.enqueue(msg)
}

// sendError reports a rejected action to its sender alone
func (h *Handler) sendError(c *client, err error) {
	h.trySend(c, ErrorMessage{Type: MsgError, Message: err.Error()})
}

// broadcastRoom fans a room snapshot out to every member, one projection
// per recipient so nobody is told their own identity
func (h *Handler) broadcastRoom(room *models.Room) {
	if room == nil {
		return
	}

	for _, playerID := range room.Order {
		c := h.lookup(playerID)
		if c == nil {
			continue
		}
		h.trySend(c, RoomStateMessage{
			Type: MsgRoomState,
			Room: game.ProjectRoom(room, playerID),
		})
	}
}

// broadcastAnnouncement pushes flavor text to every member of a room
func (h *Handler) broadcastAnnouncement(room *models.Room, text string) {
	if room == nil || text == "" {
		return
	}

	for _, playerID := range room.Order {
		h.trySend(h.lookup(playerID), AnnouncementMessage{Type: MsgAnnouncement, Text: text})
	}
}

// playerName resolves a display name from a room snapshot
func playerName(room *models.Room, playerID string) string {
	if room != nil {
		if p, ok := room.Players[playerID]; ok && p.Name != "" {
			return p.Name
		}
	}
	return playerID
}

// announceGameOver sends the closing flavor line once a room has finished
func (h *Handler) announceGameOver(ctx context.Context, room *models.Room) {
	if h.messaging == nil || room == nil || len(room.Standings) == 0 {
		return
	}

	output, err := h.messaging.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
		WinnerName: room.Standings[0].PlayerName,
	})
	if err != nil {
		return
	}
	h.broadcastAnnouncement(room, output.Message)
}

// TurnTimedOut implements game.TimeoutNotifier: a turn the room's own timer
// ended is pushed to every member
func (h *Handler) TurnTimedOut(event *game.TimeoutEvent) {
	if event == nil || event.Room == nil {
		return
	}

	var flavor string
	if h.messaging != nil {
		if output, err := h.messaging.GetTimeoutMessage(context.Background(), &messaging.GetTimeoutMessageInput{
			PlayerName: playerName(event.Room, event.TimedOutPlayerID),
		}); err == nil {
			flavor = output.Message
		}
	}

	for _, playerID := range event.Room.Order {
		c := h.lookup(playerID)
		if c == nil {
			continue
		}
		h.trySend(c, TurnTimeoutMessage{
			Type:             MsgTurnTimeout,
			TimedOutPlayerID: event.TimedOutPlayerID,
			Finished:         event.Finished,
			Room:             game.ProjectRoom(event.Room, playerID),
			Flavor:           flavor,
		})
	}

	if event.Finished {
		h.announceGameOver(context.Background(), event.Room)
	}
}

// handleMessage dispatches one client action to the game service
func (h *Handler) handleMessage(ctx context.Context, c *client, msg *ClientMessage) {
	switch msg.Type {
	case MsgCreateRoom:
		output, err := h.service.CreateRoom(ctx, &game.CreateRoomInput{
			HostID:    c.playerID,
			HostName:  msg.Name,
			AvatarRef: msg.Avatar,
		})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgJoinRoom:
		output, err := h.service.JoinRoom(ctx, &game.JoinRoomInput{
			RoomCode:   msg.RoomCode,
			PlayerID:   c.playerID,
			PlayerName: msg.Name,
			AvatarRef:  msg.Avatar,
		})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgLeaveRoom:
		output, err := h.service.LeaveRoom(ctx, &game.LeaveRoomInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		// A PLAYING-phase leave keeps the player a member; only tell them
		// the room is gone when the departure actually removed them
		if output.RoomClosed || output.Removed {
			h.trySend(c, RoomClosedMessage{Type: MsgRoomClosed, RoomCode: output.RoomCode})
		}
		h.broadcastRoom(output.Room)

	case MsgStartAssignment:
		output, err := h.service.StartAssignment(ctx, &game.StartAssignmentInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgSubmitAssignment:
		output, err := h.service.SubmitAssignment(ctx, &game.SubmitAssignmentInput{
			PlayerID:    c.playerID,
			DisplayName: msg.DisplayName,
			Aliases:     msg.Aliases,
			ImageRef:    msg.ImageRef,
		})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgStartGame:
		output, err := h.service.StartGame(ctx, &game.StartGameInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgAskQuestion:
		output, err := h.service.AskQuestion(ctx, &game.AskQuestionInput{
			PlayerID: c.playerID,
			Text:     msg.Text,
		})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgVote:
		output, err := h.service.SubmitVote(ctx, &game.SubmitVoteInput{
			PlayerID:   c.playerID,
			QuestionID: msg.QuestionID,
			Vote:       models.VoteType(msg.Vote),
		})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgGuess:
		output, err := h.service.MakeGuess(ctx, &game.MakeGuessInput{
			PlayerID: c.playerID,
			Text:     msg.Text,
		})
		if err != nil {
			h.sendError(c, err)
			return
		}

		result := GuessResultMessage{
			Type:     MsgGuessResult,
			Result:   output.Result,
			Finished: output.Finished,
		}
		if !output.LockExpiresAt.IsZero() {
			expires := output.LockExpiresAt
			result.LockExpiresAt = &expires
		}
		if output.Identity != nil {
			result.Identity = output.Identity.DisplayName
		}
		if h.messaging != nil {
			if flavor, ferr := h.messaging.GetGuessResultMessage(ctx, &messaging.GetGuessResultMessageInput{
				PlayerName: playerName(output.Room, c.playerID),
				Correct:    output.Result == game.GuessResultCorrect,
				Locked:     output.Result == game.GuessResultLocked,
			}); ferr == nil {
				result.Flavor = flavor.Message
			}
		}
		h.trySend(c, result)

		// Lock state is the guesser's business; the room only needs a
		// fresh state when something visible changed
		if output.Result == game.GuessResultCorrect {
			h.broadcastRoom(output.Room)
		}
		if output.Finished {
			h.announceGameOver(ctx, output.Room)
		}

	case MsgPass:
		output, err := h.service.PassTurn(ctx, &game.PassTurnInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

	case MsgForfeit:
		output, err := h.service.Forfeit(ctx, &game.ForfeitInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastRoom(output.Room)

		if h.messaging != nil && output.Identity != nil {
			if flavor, ferr := h.messaging.GetForfeitMessage(ctx, &messaging.GetForfeitMessageInput{
				PlayerName:   playerName(output.Room, c.playerID),
				IdentityName: output.Identity.DisplayName,
			}); ferr == nil {
				h.broadcastAnnouncement(output.Room, flavor.Message)
			}
		}
		if output.Finished {
			h.announceGameOver(ctx, output.Room)
		}

	case MsgGetRoom:
		output, err := h.service.GetRoom(ctx, &game.GetRoomInput{PlayerID: c.playerID})
		if err != nil {
			h.sendError(c, err)
			return
		}
		h.trySend(c, RoomStateMessage{
			Type: MsgRoomState,
			Room: game.ProjectRoom(output.Room, c.playerID),
		})

	default:
		// ignore unknown types
	}
}
