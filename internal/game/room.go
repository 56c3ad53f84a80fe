package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"monopoly-be/internal/board"
)

// Engine owns every rule of the game. It mutates one Room at a time; the
// caller is responsible for serializing calls per room. Randomness and the
// clock are fields so tests can pin them.
type Engine struct {
	rng  *rand.Rand
	dice func(count int) []int
	draw func(deck board.DeckKind) board.Card
	now  func() time.Time
}

func NewEngine() *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	e.dice = func(count int) []int {
		values := make([]int, count)
		for i := range values {
			values[i] = e.rng.Intn(6) + 1
		}
		return values
	}
	e.draw = func(deck board.DeckKind) board.Card {
		return board.RandomCard(deck, e.rng)
	}
	return e
}

// NewRoom creates a room with its creator seated, ready, and owning it.
// The caller supplies a directory-unique code.
func (e *Engine) NewRoom(code, playerName, roomName string) (*Room, string) {
	playerID := uuid.NewString()
	if roomName == "" {
		roomName = fmt.Sprintf("%s's room", playerName)
	}

	settings := DefaultSettings()
	player := &Player{
		ID:          playerID,
		Name:        playerName,
		Color:       board.PlayerColors[0],
		Money:       settings.InitialMoney,
		Properties:  []int{},
		IsReady:     true,
		IsConnected: true,
	}

	room := &Room{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      roomName,
		OwnerID:   playerID,
		Players:   []*Player{player},
		Settings:  settings,
		GameState: newGameState(),
		Messages:  []ChatMessage{},
		Events:    []GameEvent{},
		CreatedAt: e.now(),
	}
	return room, playerID
}

// AddPlayer seats a new player in a waiting room.
func (e *Engine) AddPlayer(r *Room, playerName string) (*Player, error) {
	if len(r.Players) >= r.Settings.MaxPlayers {
		return nil, ErrRoomFull
	}
	if r.GameState.Phase != PhaseWaiting {
		return nil, ErrGameInProgress
	}

	used := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		used[p.Color] = true
	}
	color := board.PlayerColors[0]
	for _, c := range board.PlayerColors {
		if !used[c] {
			color = c
			break
		}
	}

	player := &Player{
		ID:          uuid.NewString(),
		Name:        playerName,
		Color:       color,
		Money:       r.Settings.InitialMoney,
		Properties:  []int{},
		IsConnected: true,
	}
	r.Players = append(r.Players, player)
	e.addSystemMessage(r, fmt.Sprintf("%s joined the room", playerName))
	e.addEvent(r, EventSystem, player.ID, fmt.Sprintf("%s joined the room", playerName))
	return player, nil
}

// RemovePlayer handles leave and kick. In the lobby the player is removed
// outright; mid-game they are bankrupted instead so ownership records and
// turn rotation stay intact.
func (e *Engine) RemovePlayer(r *Room, playerID string) bool {
	player := r.Player(playerID)
	if player == nil {
		return false
	}

	if r.GameState.Phase == PhasePlaying && !player.IsBankrupt {
		e.addSystemMessage(r, fmt.Sprintf("%s left the game", player.Name))
		e.bankrupt(r, player, "")
		if r.GameState.CurrentPlayerID == playerID && r.GameState.Phase == PhasePlaying {
			e.nextTurn(r)
		}
		player.IsConnected = false
		return true
	}

	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			break
		}
	}
	e.addSystemMessage(r, fmt.Sprintf("%s left the room", player.Name))

	if r.OwnerID == playerID && len(r.Players) > 0 {
		r.OwnerID = r.Players[0].ID
		e.addSystemMessage(r, fmt.Sprintf("%s is now the room owner", r.Players[0].Name))
	}
	return true
}

func (e *Engine) SetPlayerReady(r *Room, playerID string, ready bool) {
	if p := r.Player(playerID); p != nil {
		p.IsReady = ready
	}
}

// UpdateSettings applies a partial settings change while waiting. Changing
// the initial money re-seeds every seated player.
func (e *Engine) UpdateSettings(r *Room, patch SettingsPatch) error {
	if r.GameState.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	s := r.Settings
	if patch.InitialMoney != nil {
		if *patch.InitialMoney < 500 || *patch.InitialMoney > 10000 {
			return fmt.Errorf("initial money out of range: %d", *patch.InitialMoney)
		}
		s.InitialMoney = *patch.InitialMoney
	}
	if patch.DiceCount != nil {
		if *patch.DiceCount != 1 && *patch.DiceCount != 2 {
			return fmt.Errorf("dice count must be 1 or 2: %d", *patch.DiceCount)
		}
		s.DiceCount = *patch.DiceCount
	}
	if patch.TurnTimeLimit != nil {
		if *patch.TurnTimeLimit < 30 || *patch.TurnTimeLimit > 300 {
			return fmt.Errorf("turn time limit out of range: %d", *patch.TurnTimeLimit)
		}
		s.TurnTimeLimit = *patch.TurnTimeLimit
	}
	if patch.MaxPlayers != nil {
		if *patch.MaxPlayers < 2 || *patch.MaxPlayers > 6 {
			return fmt.Errorf("max players out of range: %d", *patch.MaxPlayers)
		}
		if *patch.MaxPlayers < len(r.Players) {
			return fmt.Errorf("room already has %d players", len(r.Players))
		}
		s.MaxPlayers = *patch.MaxPlayers
	}
	if patch.EnableTax != nil {
		s.EnableTax = *patch.EnableTax
	}
	if patch.EnableJail != nil {
		s.EnableJail = *patch.EnableJail
	}
	r.Settings = s

	if patch.InitialMoney != nil {
		for _, p := range r.Players {
			p.Money = s.InitialMoney
		}
	}
	return nil
}

// StartGame moves the room to playing: players reset, turn order
// shuffled, fresh game state, logs and trade cleared.
func (e *Engine) StartGame(r *Room) error {
	if r.GameState.Phase != PhaseWaiting {
		return ErrWrongPhase
	}
	if len(r.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	for _, p := range r.Players {
		if p.ID != r.OwnerID && !p.IsReady {
			return ErrPlayersNotReady
		}
	}

	for _, p := range r.Players {
		p.Money = r.Settings.InitialMoney
		p.Position = 0
		p.Properties = []int{}
		p.InJail = false
		p.JailTurns = 0
		p.JailFreeCards = 0
		p.IsBankrupt = false
	}
	e.rng.Shuffle(len(r.Players), func(i, j int) {
		r.Players[i], r.Players[j] = r.Players[j], r.Players[i]
	})

	r.GameState = newGameState()
	r.GameState.Phase = PhasePlaying
	r.GameState.CurrentPlayerID = r.Players[0].ID
	r.GameState.TurnStartTime = e.now()
	r.ActiveTrade = nil
	r.Messages = []ChatMessage{}
	r.Events = []GameEvent{}

	e.addEvent(r, EventSystem, "", "the game has started")
	e.addSystemMessage(r, fmt.Sprintf("The game has started! %s goes first", r.Players[0].Name))
	return nil
}

// AddChatMessage appends a player chat line, keeping the last 100.
func (e *Engine) AddChatMessage(r *Room, playerID, text string) (*ChatMessage, error) {
	player := r.Player(playerID)
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	msg := ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   player.ID,
		SenderName: player.Name,
		Text:       text,
		Timestamp:  e.now(),
	}
	r.Messages = append(r.Messages, msg)
	if len(r.Messages) > 100 {
		r.Messages = r.Messages[len(r.Messages)-100:]
	}
	return &msg, nil
}

func (e *Engine) addSystemMessage(r *Room, text string) {
	r.Messages = append(r.Messages, ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   "system",
		SenderName: "System",
		Text:       text,
		Timestamp:  e.now(),
		IsSystem:   true,
	})
	if len(r.Messages) > 100 {
		r.Messages = r.Messages[len(r.Messages)-100:]
	}
}

func (e *Engine) addEvent(r *Room, typ EventType, playerID, description string) {
	var name string
	if p := r.Player(playerID); p != nil {
		name = p.Name
	}
	r.Events = append(r.Events, GameEvent{
		ID:          uuid.NewString(),
		Type:        typ,
		PlayerID:    playerID,
		PlayerName:  name,
		Description: description,
		Timestamp:   e.now(),
	})
	if len(r.Events) > 50 {
		r.Events = r.Events[len(r.Events)-50:]
	}
}
