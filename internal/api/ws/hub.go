package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"monopoly-be/internal/config"
	"monopoly-be/internal/game"
	"monopoly-be/internal/room"
)

var errNotInRoom = errors.New("join a room first")
var errOwnerOnly = errors.New("only the room owner can do that")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one websocket connection, bound to a player once they create,
// join, or reconnect to a room.
type client struct {
	conn     *websocket.Conn
	mu       sync.Mutex
	roomID   string
	playerID string
}

func (c *client) send(typ string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteJSON(Envelope{Type: typ, Payload: raw})
}

func (c *client) sendRaw(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *client) sendError(err error) {
	c.send(EventError, errorPayload{Message: err.Error()})
}

// Hub routes intents from websocket clients into the room manager and
// fans room snapshots back out.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	mgr    *room.Manager
	timers *room.TurnTimers
	cfg    config.Config
	log    *zap.Logger
}

func NewHub(mgr *room.Manager, timers *room.TurnTimers, cfg config.Config, log *zap.Logger) *Hub {
	h := &Hub{
		rooms:  map[string]map[*client]struct{}{},
		mgr:    mgr,
		timers: timers,
		cfg:    cfg,
		log:    log,
	}
	timers.SetOnChange(h.BroadcastRoom)
	return h
}

// HandleWS upgrades the connection and runs its read loop until it drops.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	cl := &client{conn: conn}
	defer h.handleDisconnect(cl)

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		h.dispatch(cl, env)
	}
}

func (h *Hub) dispatch(cl *client, env Envelope) {
	switch env.Type {
	case IntentPing:
		cl.send(EventPong, nil)
	case IntentCreateRoom:
		h.handleCreateRoom(cl, env.Payload)
	case IntentJoinRoom:
		h.handleJoinRoom(cl, env.Payload)
	case IntentReconnect:
		h.handleReconnect(cl, env.Payload)
	case IntentLeaveRoom:
		h.handleLeave(cl)
	case IntentKickPlayer:
		h.handleKick(cl, env.Payload)

	case IntentChatMessage:
		var p chatPayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			_, err := h.mgr.Engine().AddChatMessage(r, cl.playerID, p.Text)
			return err
		})
	case IntentSetReady:
		var p readyPayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			h.mgr.Engine().SetPlayerReady(r, cl.playerID, p.IsReady)
			return nil
		})
	case IntentUpdateSettings:
		var p game.SettingsPatch
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			if r.OwnerID != cl.playerID {
				return errOwnerOnly
			}
			return h.mgr.Engine().UpdateSettings(r, p)
		})
	case IntentStartGame:
		h.mutate(cl, func(r *game.Room) error {
			if r.OwnerID != cl.playerID {
				return errOwnerOnly
			}
			return h.mgr.Engine().StartGame(r)
		})

	case IntentRollDice:
		h.mutate(cl, func(r *game.Room) error {
			_, err := h.mgr.Engine().RollDice(r, cl.playerID)
			return err
		})
	case IntentBuyProperty:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().BuyProperty(r, cl.playerID)
		})
	case IntentEndTurn:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().EndTurn(r, cl.playerID)
		})
	case IntentPayRent:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().PayRent(r, cl.playerID)
		})
	case IntentDismissCard:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().DismissCard(r, cl.playerID)
		})
	case IntentUseJailFree:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().UseJailFreeCard(r, cl.playerID)
		})
	case IntentPayJailFine:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().PayJailFine(r, cl.playerID)
		})

	case IntentProposeTrade:
		var p game.TradeTerms
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			_, err := h.mgr.Engine().ProposeTrade(r, cl.playerID, p)
			return err
		})
	case IntentRespondTrade:
		var p respondTradePayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			return h.mgr.Engine().RespondTrade(r, cl.playerID, p.Accept)
		})
	case IntentCounterTrade:
		var p game.TradeTerms
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			_, err := h.mgr.Engine().CounterTrade(r, cl.playerID, p)
			return err
		})
	case IntentCancelTrade:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().CancelTrade(r, cl.playerID)
		})

	case IntentMortgage:
		var p tilePayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			_, err := h.mgr.Engine().MortgageProperty(r, cl.playerID, p.TileID)
			return err
		})
	case IntentUnmortgage:
		var p tilePayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			return h.mgr.Engine().UnmortgageProperty(r, cl.playerID, p.TileID)
		})
	case IntentBuildHouse:
		var p tilePayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			return h.mgr.Engine().BuildHouse(r, cl.playerID, p.TileID)
		})
	case IntentSellHouse:
		var p tilePayload
		h.mutateWith(cl, env.Payload, &p, func(r *game.Room) error {
			return h.mgr.Engine().SellHouse(r, cl.playerID, p.TileID)
		})
	case IntentDeclareBankrupt:
		h.mutate(cl, func(r *game.Room) error {
			return h.mgr.Engine().DeclareBankruptcy(r, cl.playerID)
		})

	default:
		cl.sendError(errors.New("unknown intent: " + env.Type))
	}
}

// mutate runs fn under the client's room lock, broadcasts the new room
// snapshot on success, and reports the error back to the caller alone on
// failure. The turn timer is rearmed whenever the turn changed under fn.
func (h *Hub) mutate(cl *client, fn func(r *game.Room) error) {
	if cl.roomID == "" {
		cl.sendError(errNotInRoom)
		return
	}
	var snapshot []byte
	err := h.mgr.WithRoom(cl.roomID, func(r *game.Room) error {
		turnBefore := r.GameState.TurnStartTime
		if err := fn(r); err != nil {
			return err
		}
		if r.GameState.Phase == game.PhasePlaying {
			if !r.GameState.TurnStartTime.Equal(turnBefore) {
				h.timers.Arm(r)
			}
		} else {
			h.timers.Stop(r.ID)
		}
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		cl.sendError(err)
		return
	}
	h.broadcastBytes(cl.roomID, snapshot)
}

func (h *Hub) mutateWith(cl *client, raw json.RawMessage, payload interface{}, fn func(r *game.Room) error) {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, payload); err != nil {
			cl.sendError(errors.New("malformed payload"))
			return
		}
	}
	h.mutate(cl, fn)
}

func (h *Hub) handleCreateRoom(cl *client, raw json.RawMessage) {
	var p createRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.PlayerName == "" {
		cl.sendError(errors.New("player name required"))
		return
	}
	if cl.roomID != "" {
		cl.sendError(errors.New("already in a room"))
		return
	}
	r, playerID := h.mgr.CreateRoom(p.PlayerName, p.RoomName)
	h.attach(cl, r.ID, playerID)
	_ = h.mgr.WithRoom(r.ID, func(r *game.Room) error {
		cl.send(EventRoomCreated, roomHandlePayload{Room: r, PlayerID: playerID})
		return nil
	})
}

func (h *Hub) handleJoinRoom(cl *client, raw json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.PlayerName == "" || p.Code == "" {
		cl.sendError(errors.New("room code and player name required"))
		return
	}
	if cl.roomID != "" {
		cl.sendError(errors.New("already in a room"))
		return
	}
	var snapshot []byte
	var roomID string
	err := h.mgr.WithRoomByCode(p.Code, func(r *game.Room) error {
		player, err := h.mgr.Engine().AddPlayer(r, p.PlayerName)
		if err != nil {
			return err
		}
		roomID = r.ID
		h.attach(cl, r.ID, player.ID)
		cl.send(EventRoomJoined, roomHandlePayload{Room: r, PlayerID: player.ID})
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		cl.sendError(err)
		return
	}
	h.broadcastBytes(roomID, snapshot)
}

func (h *Hub) handleReconnect(cl *client, raw json.RawMessage) {
	var p reconnectPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.RoomID == "" || p.PlayerID == "" {
		cl.sendError(errors.New("room id and player id required"))
		return
	}
	var snapshot []byte
	err := h.mgr.WithRoom(p.RoomID, func(r *game.Room) error {
		player := r.Player(p.PlayerID)
		if player == nil {
			return game.ErrPlayerNotFound
		}
		player.IsConnected = true
		h.attach(cl, r.ID, player.ID)
		cl.send(EventRoomJoined, roomHandlePayload{Room: r, PlayerID: player.ID})
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		cl.sendError(err)
		return
	}
	h.broadcastBytes(p.RoomID, snapshot)
}

func (h *Hub) handleLeave(cl *client) {
	if cl.roomID == "" {
		cl.sendError(errNotInRoom)
		return
	}
	roomID := cl.roomID
	h.removePlayer(roomID, cl.playerID)
	h.detach(cl)
}

func (h *Hub) handleKick(cl *client, raw json.RawMessage) {
	var p kickPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.PlayerID == "" {
		cl.sendError(errors.New("player id required"))
		return
	}
	if cl.roomID == "" {
		cl.sendError(errNotInRoom)
		return
	}
	ownerErr := h.mgr.WithRoom(cl.roomID, func(r *game.Room) error {
		if r.OwnerID != cl.playerID {
			return errOwnerOnly
		}
		if r.Player(p.PlayerID) == nil {
			return game.ErrPlayerNotFound
		}
		return nil
	})
	if ownerErr != nil {
		cl.sendError(ownerErr)
		return
	}
	if target := h.clientFor(cl.roomID, p.PlayerID); target != nil {
		target.send(EventKicked, nil)
		h.detach(target)
	}
	h.removePlayer(cl.roomID, p.PlayerID)
}

// removePlayer runs the leave/kick path and deletes the room when it
// empties out.
func (h *Hub) removePlayer(roomID, playerID string) {
	var snapshot []byte
	empty := false
	err := h.mgr.WithRoom(roomID, func(r *game.Room) error {
		h.mgr.Engine().RemovePlayer(r, playerID)
		if len(r.Players) == 0 {
			empty = true
			return nil
		}
		if r.GameState.Phase == game.PhasePlaying {
			h.timers.Arm(r)
		} else {
			h.timers.Stop(r.ID)
		}
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		return
	}
	if empty {
		h.timers.Stop(roomID)
		h.mgr.DeleteRoom(roomID)
		return
	}
	h.broadcastBytes(roomID, snapshot)
}

// handleDisconnect flags the player offline. In the lobby they are removed
// for good after the grace period; mid-game the seat is kept so they can
// reconnect.
func (h *Hub) handleDisconnect(cl *client) {
	_ = cl.conn.Close()
	if cl.roomID == "" {
		return
	}
	roomID, playerID := cl.roomID, cl.playerID
	h.detach(cl)

	var snapshot []byte
	waiting := false
	err := h.mgr.WithRoom(roomID, func(r *game.Room) error {
		p := r.Player(playerID)
		if p == nil {
			return nil
		}
		p.IsConnected = false
		waiting = r.GameState.Phase == game.PhaseWaiting
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		return
	}
	h.broadcastBytes(roomID, snapshot)

	if waiting {
		time.AfterFunc(h.cfg.DisconnectGrace, func() {
			gone := false
			_ = h.mgr.WithRoom(roomID, func(r *game.Room) error {
				p := r.Player(playerID)
				gone = p != nil && !p.IsConnected && r.GameState.Phase == game.PhaseWaiting
				return nil
			})
			if gone {
				h.removePlayer(roomID, playerID)
			}
		})
	}
}

// BroadcastRoom pushes a fresh snapshot of the room to everyone in it.
func (h *Hub) BroadcastRoom(roomID string) {
	var snapshot []byte
	err := h.mgr.WithRoom(roomID, func(r *game.Room) error {
		snapshot = roomSnapshot(r)
		return nil
	})
	if err != nil {
		return
	}
	h.broadcastBytes(roomID, snapshot)
}

func roomSnapshot(r *game.Room) []byte {
	raw, err := json.Marshal(struct {
		Room *game.Room `json:"room"`
	}{r})
	if err != nil {
		return nil
	}
	data, _ := json.Marshal(Envelope{Type: EventRoomUpdated, Payload: raw})
	return data
}

func (h *Hub) broadcastBytes(roomID string, data []byte) {
	if data == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.rooms[roomID] {
		cl.sendRaw(data)
	}
}

func (h *Hub) attach(cl *client, roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cl.roomID = roomID
	cl.playerID = playerID
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = map[*client]struct{}{}
	}
	h.rooms[roomID][cl] = struct{}{}
}

func (h *Hub) detach(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.rooms[cl.roomID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.rooms, cl.roomID)
		}
	}
	cl.roomID = ""
	cl.playerID = ""
}

func (h *Hub) clientFor(roomID, playerID string) *client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.rooms[roomID] {
		if cl.playerID == playerID {
			return cl
		}
	}
	return nil
}
