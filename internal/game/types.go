package game

import (
	"encoding/json"
	"time"

	"monopoly-be/internal/board"
)

// Gameplay constants.
const (
	PassGoBonus  = 200
	JailFine     = 50
	MaxJailTurns = 3
	MaxAfkTurns  = 3
	HotelHouses  = 5
	MaxDoubles   = 3
)

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// TurnBlock names the obligation currently blocking end-of-turn, if any.
// It is recomputed from the open obligations after every mutation, never
// set directly.
type TurnBlock string

const (
	BlockNone       TurnBlock = "none"
	BlockRent       TurnBlock = "rent"
	BlockCard       TurnBlock = "card"
	BlockBankruptcy TurnBlock = "bankruptcy"
)

type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Money         int    `json:"money"`
	Position      int    `json:"position"`
	Properties    []int  `json:"properties"`
	InJail        bool   `json:"inJail"`
	JailTurns     int    `json:"jailTurns"`
	JailFreeCards int    `json:"jailFreeCards"`
	IsReady       bool   `json:"isReady"`
	IsConnected   bool   `json:"isConnected"`
	IsBankrupt    bool   `json:"isBankrupt"`
}

type OwnedProperty struct {
	TileID    int    `json:"tileId"`
	OwnerID   string `json:"ownerId"`
	Houses    int    `json:"houses"` // 5 = hotel
	Mortgaged bool   `json:"isMortgaged"`
}

type Settings struct {
	InitialMoney  int  `json:"initialMoney"`
	DiceCount     int  `json:"diceCount"`     // 1 or 2
	TurnTimeLimit int  `json:"turnTimeLimit"` // seconds
	EnableTax     bool `json:"enableTax"`
	EnableJail    bool `json:"enableJail"`
	MaxPlayers    int  `json:"maxPlayers"`
}

func DefaultSettings() Settings {
	return Settings{
		InitialMoney:  1500,
		DiceCount:     2,
		TurnTimeLimit: 60,
		EnableTax:     true,
		EnableJail:    true,
		MaxPlayers:    4,
	}
}

// SettingsPatch is a partial settings update; nil fields are untouched.
type SettingsPatch struct {
	InitialMoney  *int  `json:"initialMoney"`
	DiceCount     *int  `json:"diceCount"`
	TurnTimeLimit *int  `json:"turnTimeLimit"`
	EnableTax     *bool `json:"enableTax"`
	EnableJail    *bool `json:"enableJail"`
	MaxPlayers    *int  `json:"maxPlayers"`
}

type RentDue struct {
	PlayerID   string `json:"playerId"`
	Amount     int    `json:"amount"`
	ToPlayerID string `json:"toPlayerId"`
}

// PendingBankruptcy is an unresolved debt the player may still cover by
// mortgaging. An empty ToPlayerID means the bank is the creditor.
type PendingBankruptcy struct {
	PlayerID   string `json:"playerId"`
	AmountOwed int    `json:"amountOwed"`
	ToPlayerID string `json:"toPlayerId,omitempty"`
}

type GameState struct {
	Phase             Phase              `json:"phase"`
	CurrentPlayerID   string             `json:"currentPlayerId"`
	TurnStartTime     time.Time          `json:"turnStartTime"`
	DiceValues        []int              `json:"diceValues"`
	LastDiceRoll      int                `json:"lastDiceRoll"`
	DoublesCount      int                `json:"doublesCount"`
	CanRollDice       bool               `json:"canRollDice"`
	HasRolledThisTurn bool               `json:"hasRolledThisTurn"`
	ConsecutiveAfk    map[string]int     `json:"consecutiveAfkTurns"`
	MustPayRent       *RentDue           `json:"mustPayRent"`
	CurrentCard       *board.Card        `json:"currentCard"`
	Winner            string             `json:"winner,omitempty"`
	OwnedProperties   []OwnedProperty    `json:"ownedProperties"`
	PendingBankrupt   *PendingBankruptcy `json:"pendingBankruptcy"`

	// TurnDone means the rolling part of the turn is over; the turn may
	// end once no obligation blocks it.
	TurnDone bool      `json:"-"`
	Block    TurnBlock `json:"blockReason"`
}

// refreshBlock derives the blocking obligation. Bankruptcy outranks rent,
// rent outranks an undismissed card.
func (g *GameState) refreshBlock() {
	switch {
	case g.PendingBankrupt != nil:
		g.Block = BlockBankruptcy
	case g.MustPayRent != nil:
		g.Block = BlockRent
	case g.CurrentCard != nil:
		g.Block = BlockCard
	default:
		g.Block = BlockNone
	}
}

// CanEndTurn reports whether the current player may end the turn.
func (g *GameState) CanEndTurn() bool {
	return g.TurnDone && g.Block == BlockNone
}

// MarshalJSON adds the derived canEndTurn flag clients key off.
func (g GameState) MarshalJSON() ([]byte, error) {
	type alias GameState
	return json.Marshal(struct {
		alias
		CanEndTurn bool `json:"canEndTurn"`
	}{alias(g), g.CanEndTurn()})
}

func newGameState() GameState {
	return GameState{
		Phase:           PhaseWaiting,
		DiceValues:      []int{},
		CanRollDice:     true,
		ConsecutiveAfk:  map[string]int{},
		OwnedProperties: []OwnedProperty{},
		Block:           BlockNone,
	}
}

type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	IsSystem   bool      `json:"isSystem"`
}

type EventType string

const (
	EventDice     EventType = "dice"
	EventMove     EventType = "move"
	EventBuy      EventType = "buy"
	EventRent     EventType = "rent"
	EventCard     EventType = "card"
	EventJail     EventType = "jail"
	EventBankrupt EventType = "bankrupt"
	EventTrade    EventType = "trade"
	EventSystem   EventType = "system"
	EventMoney    EventType = "money"
)

type GameEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	PlayerID    string    `json:"playerId,omitempty"`
	PlayerName  string    `json:"playerName,omitempty"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
	TradeCountered TradeStatus = "countered"
)

type TradeOffer struct {
	ID                     string      `json:"id"`
	FromPlayerID           string      `json:"fromPlayerId"`
	ToPlayerID             string      `json:"toPlayerId"`
	OfferedProperties      []int       `json:"offeredProperties"`
	RequestedProperties    []int       `json:"requestedProperties"`
	OfferedMoney           int         `json:"offeredMoney"`
	RequestedMoney         int         `json:"requestedMoney"`
	OfferedJailFreeCards   int         `json:"offeredJailFreeCards"`
	RequestedJailFreeCards int         `json:"requestedJailFreeCards"`
	Status                 TradeStatus `json:"status"`
	IsCounterOffer         bool        `json:"isCounterOffer"`
	OriginalOfferID        string      `json:"originalOfferId,omitempty"`

	// Mortgage state of every traded property at proposal time; a change
	// before acceptance voids the whole trade.
	mortgagedAtProposal map[int]bool
}

type Room struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	OwnerID     string        `json:"ownerId"`
	Players     []*Player     `json:"players"`
	Settings    Settings      `json:"settings"`
	GameState   GameState     `json:"gameState"`
	Messages    []ChatMessage `json:"messages"`
	Events      []GameEvent   `json:"events"`
	ActiveTrade *TradeOffer   `json:"activeTrade"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Player returns the room member with the given id, nil if absent.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayers returns the non-bankrupt players in turn order.
func (r *Room) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.IsBankrupt {
			out = append(out, p)
		}
	}
	return out
}

// Ownership returns the ownership record for a tile, nil if unowned.
func (r *Room) Ownership(tileID int) *OwnedProperty {
	for i := range r.GameState.OwnedProperties {
		if r.GameState.OwnedProperties[i].TileID == tileID {
			return &r.GameState.OwnedProperties[i]
		}
	}
	return nil
}
