package ws

import (
	"encoding/json"

	"monopoly-be/internal/game"
)

// Envelope is the wire shape in both directions: a type tag and a payload
// the type dictates.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client intents.
const (
	IntentCreateRoom      = "create-room"
	IntentJoinRoom        = "join-room"
	IntentReconnect       = "reconnect"
	IntentLeaveRoom       = "leave-room"
	IntentChatMessage     = "chat-message"
	IntentSetReady        = "set-ready"
	IntentUpdateSettings  = "update-settings"
	IntentStartGame       = "start-game"
	IntentKickPlayer      = "kick-player"
	IntentRollDice        = "roll-dice"
	IntentBuyProperty     = "buy-property"
	IntentEndTurn         = "end-turn"
	IntentPayRent         = "pay-rent"
	IntentDismissCard     = "dismiss-card"
	IntentUseJailFree     = "use-jail-free"
	IntentPayJailFine     = "pay-jail-fine"
	IntentProposeTrade    = "propose-trade"
	IntentRespondTrade    = "respond-trade"
	IntentCounterTrade    = "counter-trade"
	IntentCancelTrade     = "cancel-trade"
	IntentMortgage        = "mortgage-property"
	IntentUnmortgage      = "unmortgage-property"
	IntentDeclareBankrupt = "declare-bankruptcy"
	IntentBuildHouse      = "build-house"
	IntentSellHouse       = "sell-house"
	IntentPing            = "ping"
)

// Server events.
const (
	EventRoomCreated = "room-created"
	EventRoomJoined  = "room-joined"
	EventRoomUpdated = "room-updated"
	EventRoomClosed  = "room-closed"
	EventKicked      = "kicked"
	EventError       = "error"
	EventPong        = "pong"
)

type createRoomPayload struct {
	PlayerName string `json:"playerName"`
	RoomName   string `json:"roomName"`
}

type joinRoomPayload struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}

type reconnectPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type chatPayload struct {
	Text string `json:"text"`
}

type readyPayload struct {
	IsReady bool `json:"isReady"`
}

type kickPayload struct {
	PlayerID string `json:"playerId"`
}

type tilePayload struct {
	TileID int `json:"tileId"`
}

type respondTradePayload struct {
	Accept bool `json:"accept"`
}

type roomHandlePayload struct {
	Room     *game.Room `json:"room"`
	PlayerID string     `json:"playerId"`
}

type errorPayload struct {
	Message string `json:"message"`
}
