package game

import (
	"fmt"

	"monopoly-be/internal/board"
)

// BuyProperty sells the current player the tile they stand on.
func (e *Engine) BuyProperty(r *Room, playerID string) error {
	p, err := e.currentPlayer(r, playerID)
	if err != nil {
		return err
	}
	g := &r.GameState
	if !g.HasRolledThisTurn {
		return ErrCannotRoll
	}

	tile := board.TileByID(p.Position)
	price, ok := board.PurchasePrice(tile)
	if !ok {
		return ErrNotPurchasable
	}
	if r.Ownership(p.Position) != nil {
		return ErrAlreadyOwned
	}
	if p.Money < price {
		return ErrInsufficientFund
	}

	p.Money -= price
	p.Properties = append(p.Properties, p.Position)
	g.OwnedProperties = append(g.OwnedProperties, OwnedProperty{
		TileID:  p.Position,
		OwnerID: p.ID,
	})
	e.addEvent(r, EventBuy, p.ID, fmt.Sprintf("%s bought %s for $%d", p.Name, tile.TileName(), price))
	return nil
}

// economyActor validates economy moves that any seated, solvent player may
// make outside their own turn (mortgaging, building, declaring).
func (e *Engine) economyActor(r *Room, playerID string) (*Player, error) {
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
	return p, nil
}

// MortgageProperty pawns a house-free property for half its price. If the
// owner was in pending bankruptcy and the proceeds cover the debt, the
// debt resolves.
func (e *Engine) MortgageProperty(r *Room, playerID string, tileID int) (int, error) {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return 0, err
	}
	own := r.Ownership(tileID)
	if own == nil || own.OwnerID != p.ID {
		return 0, ErrNotOwner
	}
	if own.Mortgaged {
		return 0, ErrMortgaged
	}
	if own.Houses > 0 {
		return 0, ErrHasHouses
	}

	value := board.MortgageValue(tileID)
	own.Mortgaged = true
	p.Money += value
	e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s mortgaged %s for $%d", p.Name, board.TileByID(tileID).TileName(), value))
	e.resolvePendingDebt(r, p)
	return value, nil
}

// UnmortgageProperty lifts a mortgage for the value plus 10% interest.
func (e *Engine) UnmortgageProperty(r *Room, playerID string, tileID int) error {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return err
	}
	own := r.Ownership(tileID)
	if own == nil || own.OwnerID != p.ID {
		return ErrNotOwner
	}
	if !own.Mortgaged {
		return ErrNotMortgaged
	}

	cost := board.MortgageValue(tileID) * 11 / 10
	if p.Money < cost {
		return ErrInsufficientFund
	}
	p.Money -= cost
	own.Mortgaged = false
	e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s unmortgaged %s for $%d", p.Name, board.TileByID(tileID).TileName(), cost))
	return nil
}

// BuildHouse adds one house (the fifth is the hotel). Requires the whole
// color group owned and unmortgaged, and builds evenly: never more than
// one above the group's lowest.
func (e *Engine) BuildHouse(r *Room, playerID string, tileID int) error {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return err
	}
	prop, ok := board.TileByID(tileID).(board.Property)
	if !ok {
		return ErrNotPurchasable
	}
	own := r.Ownership(tileID)
	if own == nil || own.OwnerID != p.ID {
		return ErrNotOwner
	}
	if own.Mortgaged {
		return ErrMortgaged
	}
	if own.Houses >= HotelHouses {
		return fmt.Errorf("%s already has a hotel", prop.Name)
	}

	group := board.PropertiesByColor(prop.Color)
	minHouses := HotelHouses
	for _, id := range group {
		o := r.Ownership(id)
		if o == nil || o.OwnerID != p.ID {
			return ErrNotOwner
		}
		if o.Mortgaged {
			return ErrMortgaged
		}
		if o.Houses < minHouses {
			minHouses = o.Houses
		}
	}
	if own.Houses > minHouses {
		return fmt.Errorf("build evenly: other %s properties have fewer houses", prop.Color)
	}
	if p.Money < prop.HouseCost {
		return ErrInsufficientFund
	}

	p.Money -= prop.HouseCost
	own.Houses++
	what := "a house"
	if own.Houses == HotelHouses {
		what = "a hotel"
	}
	e.addEvent(r, EventBuy, p.ID, fmt.Sprintf("%s built %s on %s", p.Name, what, prop.Name))
	return nil
}

// BuildableProperties lists the tiles playerID could build on right now:
// complete unmortgaged color groups, the even-building rule, and the house
// cost within their money.
func (r *Room) BuildableProperties(playerID string) []int {
	p := r.Player(playerID)
	if p == nil || p.IsBankrupt {
		return nil
	}
	var buildable []int
	seen := map[board.ColorGroup]bool{}
	for _, own := range r.GameState.OwnedProperties {
		if own.OwnerID != playerID || own.Mortgaged {
			continue
		}
		prop, ok := board.TileByID(own.TileID).(board.Property)
		if !ok || seen[prop.Color] {
			continue
		}
		seen[prop.Color] = true
		group := board.PropertiesByColor(prop.Color)
		complete := true
		minHouses := HotelHouses
		for _, id := range group {
			o := r.Ownership(id)
			if o == nil || o.OwnerID != playerID || o.Mortgaged {
				complete = false
				break
			}
			if o.Houses < minHouses {
				minHouses = o.Houses
			}
		}
		if !complete || p.Money < prop.HouseCost {
			continue
		}
		for _, id := range group {
			if o := r.Ownership(id); o.Houses == minHouses && o.Houses < HotelHouses {
				buildable = append(buildable, id)
			}
		}
	}
	return buildable
}

// SellHouse removes one house for half its cost, tearing down evenly from
// the group's highest.
func (e *Engine) SellHouse(r *Room, playerID string, tileID int) error {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return err
	}
	prop, ok := board.TileByID(tileID).(board.Property)
	if !ok {
		return ErrNotPurchasable
	}
	own := r.Ownership(tileID)
	if own == nil || own.OwnerID != p.ID {
		return ErrNotOwner
	}
	if own.Houses == 0 {
		return fmt.Errorf("%s has no houses to sell", prop.Name)
	}

	maxHouses := 0
	for _, id := range board.PropertiesByColor(prop.Color) {
		if o := r.Ownership(id); o != nil && o.OwnerID == p.ID && o.Houses > maxHouses {
			maxHouses = o.Houses
		}
	}
	if own.Houses < maxHouses {
		return fmt.Errorf("sell evenly: other %s properties have more houses", prop.Color)
	}

	own.Houses--
	p.Money += prop.HouseCost / 2
	e.addEvent(r, EventMoney, p.ID, fmt.Sprintf("%s sold a house on %s for $%d", p.Name, prop.Name, prop.HouseCost/2))
	e.resolvePendingDebt(r, p)
	return nil
}

// TotalMortgageableValue sums what the player could still raise: mortgage
// value of every unmortgaged holding plus the half-cost refund of its
// houses.
func (e *Engine) TotalMortgageableValue(r *Room, p *Player) int {
	total := 0
	for _, own := range r.GameState.OwnedProperties {
		if own.OwnerID != p.ID || own.Mortgaged {
			continue
		}
		total += board.MortgageValue(own.TileID)
		if own.Houses > 0 {
			if prop, ok := board.TileByID(own.TileID).(board.Property); ok {
				total += own.Houses * prop.HouseCost / 2
			}
		}
	}
	return total
}

// checkBankruptcy runs after a debit left p.Money negative. If the player
// can still raise money the debt goes pending; otherwise they are out now.
func (e *Engine) checkBankruptcy(r *Room, p *Player, amountOwed int, creditorID string) {
	if e.TotalMortgageableValue(r, p) > 0 {
		r.GameState.PendingBankrupt = &PendingBankruptcy{
			PlayerID:   p.ID,
			AmountOwed: amountOwed,
			ToPlayerID: creditorID,
		}
		r.GameState.refreshBlock()
		e.addSystemMessage(r, fmt.Sprintf("%s owes $%d and must mortgage or declare bankruptcy", p.Name, amountOwed))
		return
	}
	e.bankrupt(r, p, creditorID)
}

// resolvePendingDebt clears the player's pending bankruptcy once their
// balance is whole again.
func (e *Engine) resolvePendingDebt(r *Room, p *Player) {
	g := &r.GameState
	if g.PendingBankrupt == nil || g.PendingBankrupt.PlayerID != p.ID {
		return
	}
	if p.Money < 0 {
		return
	}
	g.PendingBankrupt = nil
	g.refreshBlock()
	e.addSystemMessage(r, fmt.Sprintf("%s covered the debt", p.Name))
}

// DeclareBankruptcy concedes a pending debt. The declarer's estate goes to
// the creditor, or back to the bank when the bank is owed. Refused while
// mortgaging and selling houses could still cover the deficit.
func (e *Engine) DeclareBankruptcy(r *Room, playerID string) error {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return err
	}
	g := &r.GameState
	if g.PendingBankrupt == nil || g.PendingBankrupt.PlayerID != p.ID {
		return ErrNoPendingDebt
	}
	if p.Money+e.TotalMortgageableValue(r, p) >= 0 {
		return ErrCanStillMortgage
	}
	e.forfeit(r, p, g.PendingBankrupt.ToPlayerID)
	if g.Phase == PhasePlaying && g.CurrentPlayerID == p.ID {
		e.nextTurn(r)
	}
	return nil
}

func (e *Engine) forfeit(r *Room, p *Player, creditorID string) {
	r.GameState.PendingBankrupt = nil
	e.bankrupt(r, p, creditorID)
}

// bankrupt removes the player from play. With a player creditor the estate
// transfers whole, mortgage flags and houses included; to the bank the
// tiles simply become unowned again.
func (e *Engine) bankrupt(r *Room, p *Player, creditorID string) {
	g := &r.GameState

	creditor := r.Player(creditorID)
	if creditor != nil && creditor.IsBankrupt {
		creditor = nil
	}

	if creditor != nil {
		if p.Money > 0 {
			creditor.Money += p.Money
		}
		for i := range g.OwnedProperties {
			if g.OwnedProperties[i].OwnerID == p.ID {
				g.OwnedProperties[i].OwnerID = creditor.ID
				creditor.Properties = append(creditor.Properties, g.OwnedProperties[i].TileID)
			}
		}
		if p.JailFreeCards > 0 {
			creditor.JailFreeCards += p.JailFreeCards
		}
	} else {
		kept := g.OwnedProperties[:0]
		for _, own := range g.OwnedProperties {
			if own.OwnerID != p.ID {
				kept = append(kept, own)
			}
		}
		g.OwnedProperties = kept
	}

	p.Money = 0
	p.Properties = []int{}
	p.JailFreeCards = 0
	p.InJail = false
	p.JailTurns = 0
	p.IsBankrupt = true
	delete(g.ConsecutiveAfk, p.ID)

	if g.MustPayRent != nil && (g.MustPayRent.PlayerID == p.ID || g.MustPayRent.ToPlayerID == p.ID) {
		g.MustPayRent = nil
	}
	if g.PendingBankrupt != nil && g.PendingBankrupt.PlayerID == p.ID {
		g.PendingBankrupt = nil
	}
	if r.ActiveTrade != nil && (r.ActiveTrade.FromPlayerID == p.ID || r.ActiveTrade.ToPlayerID == p.ID) {
		r.ActiveTrade = nil
	}
	g.refreshBlock()

	e.addEvent(r, EventBankrupt, p.ID, fmt.Sprintf("%s went bankrupt", p.Name))
	e.addSystemMessage(r, fmt.Sprintf("%s is bankrupt", p.Name))
	e.checkWinCondition(r)
}
