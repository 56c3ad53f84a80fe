package game

import (
	"fmt"

	"monopoly-be/internal/board"
)

// drawCard pulls a card, shows it, and applies its effect immediately.
// The card stays up until the player dismisses it.
func (e *Engine) drawCard(r *Room, p *Player, deck board.DeckKind) {
	card := e.draw(deck)
	r.GameState.CurrentCard = &card
	e.addEvent(r, EventCard, p.ID, fmt.Sprintf("%s drew a card: %s", p.Name, card.Text))
	e.applyCard(r, p, card)
	r.GameState.refreshBlock()
}

func (e *Engine) applyCard(r *Room, p *Player, card board.Card) {
	g := &r.GameState

	switch a := card.Action.(type) {
	case board.Collect:
		p.Money += a.Amount
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s collects $%d", p.Name, a.Amount))

	case board.Pay:
		p.Money -= a.Amount
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s pays $%d", p.Name, a.Amount))
		if p.Money < 0 {
			e.checkBankruptcy(r, p, -p.Money, "")
		}

	case board.MoveTo:
		e.teleportForward(r, p, a.Position)

	case board.MoveBack:
		p.Position = (p.Position - a.Spaces + board.Size) % board.Size
		e.handleLanding(r, p)

	case board.SendToJail:
		if r.Settings.EnableJail {
			e.addEvent(r, EventJail, p.ID, fmt.Sprintf("%s is sent to jail", p.Name))
			e.sendToJail(r, p)
		}

	case board.JailFree:
		p.JailFreeCards++

	case board.CollectFromEach:
		for _, other := range r.ActivePlayers() {
			if other.ID == p.ID {
				continue
			}
			other.Money -= a.Amount
			p.Money += a.Amount
			if other.Money < 0 {
				e.checkBankruptcy(r, other, -other.Money, p.ID)
			}
		}
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s collects $%d from every player", p.Name, a.Amount))

	case board.PayEach:
		for _, other := range r.ActivePlayers() {
			if other.ID == p.ID {
				continue
			}
			other.Money += a.Amount
			p.Money -= a.Amount
		}
		e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s pays $%d to every player", p.Name, a.Amount))
		if p.Money < 0 {
			e.checkBankruptcy(r, p, -p.Money, "")
		}

	case board.Repairs:
		cost := 0
		for _, own := range g.OwnedProperties {
			if own.OwnerID != p.ID {
				continue
			}
			if own.Houses >= HotelHouses {
				cost += a.PerHotel
			} else {
				cost += own.Houses * a.PerHouse
			}
		}
		if cost > 0 {
			p.Money -= cost
			e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s pays $%d for repairs", p.Name, cost))
			if p.Money < 0 {
				e.checkBankruptcy(r, p, -p.Money, "")
			}
		}

	case board.NearestStation:
		e.teleportForward(r, p, nearestForward(p.Position, board.StationPositions))
		if g.MustPayRent != nil && g.MustPayRent.PlayerID == p.ID {
			g.MustPayRent.Amount *= 2
		}

	case board.NearestUtility:
		e.teleportForward(r, p, nearestForward(p.Position, board.UtilityPositions))
		if g.MustPayRent != nil && g.MustPayRent.PlayerID == p.ID {
			roll := e.dice(2)
			g.MustPayRent.Amount = 10 * (roll[0] + roll[1])
		}
	}
}

// nearestForward picks the first position strictly ahead of from, wrapping
// to the lowest one past start.
func nearestForward(from int, positions []int) int {
	for _, pos := range positions {
		if pos > from {
			return pos
		}
	}
	return positions[0]
}
