package game

import (
	"fmt"

	"monopoly-be/internal/board"
)

// currentPlayer validates that the room is mid-game and that playerID holds
// the turn.
func (e *Engine) currentPlayer(r *Room, playerID string) (*Player, error) {
	if r.GameState.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	p := r.Player(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p.IsBankrupt {
		return nil, ErrBankruptPlayer
	}
	if r.GameState.CurrentPlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// RollDice rolls for the current player, moves them, and runs the landing.
// A pending rent does not forbid the reroll a doubles throw earned; an
// undismissed card or an unresolved debt does.
func (e *Engine) RollDice(r *Room, playerID string) ([]int, error) {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return nil, err
	}
	g := &r.GameState
	if !g.CanRollDice || g.CurrentCard != nil || g.PendingBankrupt != nil {
		return nil, ErrCannotRoll
	}

	delete(g.ConsecutiveAfk, p.ID)

	dice := e.dice(r.Settings.DiceCount)
	total := 0
	for _, d := range dice {
		total += d
	}
	isDoubles := len(dice) == 2 && dice[0] == dice[1]

	g.DiceValues = dice
	g.LastDiceRoll = total
	g.HasRolledThisTurn = true
	g.CanRollDice = false

	e.addEvent(r, EventDice, p.ID, fmt.Sprintf("%s rolled %d", p.Name, total))

	if p.InJail {
		e.rollInJail(r, p, total, isDoubles)
		g.refreshBlock()
		return dice, nil
	}

	if isDoubles {
		g.DoublesCount++
		if g.DoublesCount >= MaxDoubles {
			e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s rolled three doubles and goes to jail", p.Name))
			e.sendToJail(r, p)
			g.DoublesCount = 0
			g.TurnDone = true
			g.refreshBlock()
			return dice, nil
		}
	} else {
		g.DoublesCount = 0
	}

	e.advancePlayer(r, p, total)
	g.TurnDone = true
	if isDoubles && !p.InJail && !p.IsBankrupt {
		g.CanRollDice = true
	}
	g.refreshBlock()
	return dice, nil
}

// rollInJail resolves a jail turn: doubles escape, a third failed attempt
// force-pays the fine, anything else skips the turn.
func (e *Engine) rollInJail(r *Room, p *Player, total int, isDoubles bool) {
	g := &r.GameState
	g.DoublesCount = 0

	if isDoubles {
		p.InJail = false
		p.JailTurns = 0
		e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s rolled doubles and escapes jail", p.Name))
		e.advancePlayer(r, p, total)
		g.TurnDone = true
		return
	}

	p.JailTurns++
	if p.JailTurns >= MaxJailTurns {
		p.Money -= JailFine
		p.InJail = false
		p.JailTurns = 0
		e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s pays the $%d fine and leaves jail", p.Name, JailFine))
		if p.Money < 0 {
			e.checkBankruptcy(r, p, -p.Money, "")
		}
		if !p.IsBankrupt {
			e.advancePlayer(r, p, total)
		}
		g.TurnDone = true
		return
	}

	e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s stays in jail (%d/%d)", p.Name, p.JailTurns, MaxJailTurns))
	g.TurnDone = true
}

// advancePlayer moves forward by steps, paying the pass-go bonus on any
// wrap, then runs the landing.
func (e *Engine) advancePlayer(r *Room, p *Player, steps int) {
	if p.Position+steps >= board.Size {
		p.Money += PassGoBonus
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s passed start and collects $%d", p.Name, PassGoBonus))
	}
	p.Position = (p.Position + steps) % board.Size
	e.handleLanding(r, p)
}

// teleportForward moves to an absolute tile going forward, with the same
// pass-go rule as a dice move. Landing is triggered.
func (e *Engine) teleportForward(r *Room, p *Player, dest int) {
	if dest <= p.Position {
		p.Money += PassGoBonus
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s passed start and collects $%d", p.Name, PassGoBonus))
	}
	p.Position = dest
	e.handleLanding(r, p)
}

func (e *Engine) handleLanding(r *Room, p *Player) {
	g := &r.GameState
	tile := board.TileByID(p.Position)
	e.addEvent(r, EventMove, p.ID, fmt.Sprintf("%s landed on %s", p.Name, tile.TileName()))

	switch t := tile.(type) {
	case board.Property, board.Station, board.Utility:
		own := r.Ownership(p.Position)
		if own == nil || own.OwnerID == p.ID || own.Mortgaged {
			return
		}
		rent := e.calculateRent(r, own)
		g.MustPayRent = &RentDue{PlayerID: p.ID, Amount: rent, ToPlayerID: own.OwnerID}
		g.refreshBlock()

	case board.Tax:
		if !r.Settings.EnableTax {
			return
		}
		p.Money -= t.Amount
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s pays $%d %s", p.Name, t.Amount, t.Name))
		if p.Money < 0 {
			e.checkBankruptcy(r, p, -p.Money, "")
		}

	case board.CardSpace:
		e.drawCard(r, p, t.Deck)

	case board.Corner:
		if t.Kind == board.GoToJail && r.Settings.EnableJail {
			e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s is sent to jail", p.Name))
			e.sendToJail(r, p)
		}
	}
}

// calculateRent prices the tile in own for its current owner: house table
// for streets, count table for stations, dice multiple for utilities.
func (e *Engine) calculateRent(r *Room, own *OwnedProperty) int {
	switch t := board.TileByID(own.TileID).(type) {
	case board.Property:
		return t.Rent[own.Houses]
	case board.Station:
		count := 0
		for _, pos := range board.StationPositions {
			if o := r.Ownership(pos); o != nil && o.OwnerID == own.OwnerID {
				count++
			}
		}
		return t.Rent[count-1]
	case board.Utility:
		count := 0
		for _, pos := range board.UtilityPositions {
			if o := r.Ownership(pos); o != nil && o.OwnerID == own.OwnerID {
				count++
			}
		}
		multiplier := 4
		if count >= 2 {
			multiplier = 10
		}
		return multiplier * r.GameState.LastDiceRoll
	}
	return 0
}

// PayRent settles the rent recorded at landing. The transfer happens even
// when it sends the payer negative; the bankruptcy check runs after.
func (e *Engine) PayRent(r *Room, playerID string) error {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return err
	}
	g := &r.GameState
	if g.MustPayRent == nil || g.MustPayRent.PlayerID != playerID {
		return ErrNoRentDue
	}

	due := g.MustPayRent
	p.Money -= due.Amount
	ownerName := "the bank"
	if owner := r.Player(due.ToPlayerID); owner != nil && !owner.IsBankrupt {
		owner.Money += due.Amount
		ownerName = owner.Name
	}
	g.MustPayRent = nil
	g.TurnDone = true
	e.addEvent(r, EventRent, p.ID, fmt.Sprintf("%s paid $%d rent to %s", p.Name, due.Amount, ownerName))

	if p.Money < 0 {
		e.checkBankruptcy(r, p, -p.Money, due.ToPlayerID)
	}
	g.refreshBlock()
	return nil
}

// DismissCard acknowledges the displayed card. Its effect already ran when
// it was drawn.
func (e *Engine) DismissCard(r *Room, playerID string) error {
	if _, err := e.currentPlayer(r, playerID); err != nil {
		return err
	}
	g := &r.GameState
	if g.CurrentCard == nil {
		return ErrNoCard
	}
	g.CurrentCard = nil
	g.TurnDone = true
	g.refreshBlock()
	return nil
}

// EndTurn passes the turn once nothing blocks it.
func (e *Engine) EndTurn(r *Room, playerID string) error {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return err
	}
	g := &r.GameState
	if !g.CanEndTurn() {
		if g.Block == BlockRent {
			return ErrRentDue
		}
		return ErrCannotEndTurn
	}
	delete(g.ConsecutiveAfk, p.ID)
	e.nextTurn(r)
	return nil
}

// nextTurn advances to the next non-bankrupt player and resets the
// per-turn state.
func (e *Engine) nextTurn(r *Room) {
	g := &r.GameState
	if g.Phase != PhasePlaying {
		return
	}

	idx := -1
	for i, p := range r.Players {
		if p.ID == g.CurrentPlayerID {
			idx = i
			break
		}
	}
	for step := 1; step <= len(r.Players); step++ {
		next := r.Players[(idx+step)%len(r.Players)]
		if !next.IsBankrupt {
			g.CurrentPlayerID = next.ID
			break
		}
	}

	g.DiceValues = []int{}
	g.DoublesCount = 0
	g.CanRollDice = true
	g.HasRolledThisTurn = false
	g.TurnDone = false
	g.MustPayRent = nil
	g.CurrentCard = nil
	g.TurnStartTime = e.now()
	g.refreshBlock()
}

// HandleTurnTimeout force-completes the current turn: open obligations are
// settled the unfavorable way, the AFK strike counter ticks, and three
// strikes bankrupt the player. Reports whether the room changed.
func (e *Engine) HandleTurnTimeout(r *Room) bool {
	g := &r.GameState
	if g.Phase != PhasePlaying {
		return false
	}
	p := r.Player(g.CurrentPlayerID)
	if p == nil || p.IsBankrupt {
		return false
	}

	// A turn counts as missed only when the player never rolled; idling
	// through resolution after a roll earns no strike.
	if !g.HasRolledThisTurn {
		g.ConsecutiveAfk[p.ID]++
		e.addSystemMessage(r, fmt.Sprintf("%s ran out of time (%d/%d)", p.Name, g.ConsecutiveAfk[p.ID], MaxAfkTurns))

		if g.ConsecutiveAfk[p.ID] >= MaxAfkTurns {
			e.addSystemMessage(r, fmt.Sprintf("%s was removed after %d missed turns", p.Name, MaxAfkTurns))
			e.bankrupt(r, p, "")
			if g.Phase == PhasePlaying && g.CurrentPlayerID == p.ID {
				e.nextTurn(r)
			}
			return true
		}
	}

	// Settle whatever blocks the turn so the next player starts clean.
	if g.MustPayRent != nil && g.MustPayRent.PlayerID == p.ID {
		_ = e.PayRent(r, p.ID)
	}
	g.CurrentCard = nil
	if g.PendingBankrupt != nil && g.PendingBankrupt.PlayerID == p.ID {
		e.forfeit(r, p, g.PendingBankrupt.ToPlayerID)
	}
	if g.Phase == PhasePlaying && g.CurrentPlayerID == p.ID {
		e.nextTurn(r)
	}
	return true
}

func (e *Engine) sendToJail(r *Room, p *Player) {
	if !r.Settings.EnableJail {
		return
	}
	p.Position = board.JailPos
	p.InJail = true
	p.JailTurns = 0
}

// UseJailFreeCard releases the player with one of their held cards.
func (e *Engine) UseJailFreeCard(r *Room, playerID string) error {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return err
	}
	if !p.InJail {
		return ErrNotInJail
	}
	if p.JailFreeCards <= 0 {
		return ErrNoJailFreeCard
	}
	p.JailFreeCards--
	p.InJail = false
	p.JailTurns = 0
	e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s used a get out of jail free card", p.Name))
	return nil
}

// PayJailFine buys the player out of jail. Unlike the forced fine on the
// third failed roll, the voluntary one requires the funds up front.
func (e *Engine) PayJailFine(r *Room, playerID string) error {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return err
	}
	if !p.InJail {
		return ErrNotInJail
	}
	if p.Money < JailFine {
		return ErrInsufficientFund
	}
	p.Money -= JailFine
	p.InJail = false
	p.JailTurns = 0
	e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s paid the $%d fine and left jail", p.Name, JailFine))
	return nil
}

// checkWinCondition closes the game when a single solvent player remains,
// or with no winner at all when the last players go under together.
func (e *Engine) checkWinCondition(r *Room) {
	g := &r.GameState
	if g.Phase != PhasePlaying {
		return
	}
	active := r.ActivePlayers()
	if len(active) > 1 {
		return
	}
	g.Phase = PhaseFinished
	g.MustPayRent = nil
	g.CurrentCard = nil
	g.PendingBankrupt = nil
	g.refreshBlock()
	if len(active) == 0 {
		e.addSystemMessage(r, "everyone went bankrupt, nobody wins")
		return
	}
	g.Winner = active[0].ID
	e.addEvent(r, EventSystem, active[0].ID, fmt.Sprintf("%s won the game", active[0].Name))
	e.addSystemMessage(r, fmt.Sprintf("%s won the game!", active[0].Name))
}
