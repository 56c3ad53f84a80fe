package game

import (
	"fmt"

	"github.com/google/uuid"
)

// TradeTerms is the payload of a propose or counter intent.
type TradeTerms struct {
	ToPlayerID             string `json:"toPlayerId"`
	OfferedProperties      []int  `json:"offeredProperties"`
	RequestedProperties    []int  `json:"requestedProperties"`
	OfferedMoney           int    `json:"offeredMoney"`
	RequestedMoney         int    `json:"requestedMoney"`
	OfferedJailFreeCards   int    `json:"offeredJailFreeCards"`
	RequestedJailFreeCards int    `json:"requestedJailFreeCards"`
}

// ProposeTrade opens a trade between two solvent players. Only one trade
// may be open per room.
func (e *Engine) ProposeTrade(r *Room, playerID string, terms TradeTerms) (*TradeOffer, error) {
	from, err := e.economyActor(r, playerID)
	if err != nil {
		return nil, err
	}
	if r.ActiveTrade != nil {
		return nil, ErrTradeActive
	}
	to := r.Player(terms.ToPlayerID)
	if to == nil || to.ID == from.ID {
		return nil, ErrPlayerNotFound
	}
	if to.IsBankrupt {
		return nil, ErrBankruptPlayer
	}

	offer, err := e.buildOffer(r, from, to, terms, false, "")
	if err != nil {
		return nil, err
	}
	r.ActiveTrade = offer
	e.addEvent(r, EventTrade, from.ID, fmt.Sprintf("%s proposed a trade to %s", from.Name, to.Name))
	return offer, nil
}

// buildOffer validates the terms against both players' current holdings
// and snapshots the mortgage state of every tile in the trade.
func (e *Engine) buildOffer(r *Room, from, to *Player, terms TradeTerms, counter bool, originalID string) (*TradeOffer, error) {
	if terms.OfferedMoney < 0 || terms.RequestedMoney < 0 ||
		terms.OfferedJailFreeCards < 0 || terms.RequestedJailFreeCards < 0 {
		return nil, fmt.Errorf("trade amounts cannot be negative")
	}
	if from.Money < terms.OfferedMoney || to.Money < terms.RequestedMoney {
		return nil, ErrInsufficientFund
	}
	if from.JailFreeCards < terms.OfferedJailFreeCards || to.JailFreeCards < terms.RequestedJailFreeCards {
		return nil, ErrNoJailFreeCard
	}

	snapshot := make(map[int]bool, len(terms.OfferedProperties)+len(terms.RequestedProperties))
	for _, tileID := range terms.OfferedProperties {
		own := r.Ownership(tileID)
		if own == nil || own.OwnerID != from.ID {
			return nil, ErrNotOwner
		}
		if own.Houses > 0 {
			return nil, ErrHasHouses
		}
		snapshot[tileID] = own.Mortgaged
	}
	for _, tileID := range terms.RequestedProperties {
		own := r.Ownership(tileID)
		if own == nil || own.OwnerID != to.ID {
			return nil, ErrNotOwner
		}
		if own.Houses > 0 {
			return nil, ErrHasHouses
		}
		snapshot[tileID] = own.Mortgaged
	}

	return &TradeOffer{
		ID:                     uuid.NewString(),
		FromPlayerID:           from.ID,
		ToPlayerID:             to.ID,
		OfferedProperties:      terms.OfferedProperties,
		RequestedProperties:    terms.RequestedProperties,
		OfferedMoney:           terms.OfferedMoney,
		RequestedMoney:         terms.RequestedMoney,
		OfferedJailFreeCards:   terms.OfferedJailFreeCards,
		RequestedJailFreeCards: terms.RequestedJailFreeCards,
		Status:                 TradePending,
		IsCounterOffer:         counter,
		OriginalOfferID:        originalID,
		mortgagedAtProposal:    snapshot,
	}, nil
}

// RespondTrade accepts or rejects the open trade. Acceptance revalidates
// everything against current holdings, including the mortgage snapshot: a
// voided trade returns ErrTradeChanged and the offer is gone either way.
func (e *Engine) RespondTrade(r *Room, playerID string, accept bool) error {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return err
	}
	offer := r.ActiveTrade
	if offer == nil {
		return ErrNoActiveTrade
	}
	if offer.ToPlayerID != p.ID {
		return ErrNotYourTrade
	}

	from := r.Player(offer.FromPlayerID)
	to := p
	if !accept {
		offer.Status = TradeRejected
		r.ActiveTrade = nil
		e.addEvent(r, EventTrade, to.ID, fmt.Sprintf("%s rejected the trade", to.Name))
		return nil
	}

	if from == nil || from.IsBankrupt || !e.offerStillValid(r, offer, from, to) {
		offer.Status = TradeCancelled
		r.ActiveTrade = nil
		return ErrTradeChanged
	}

	from.Money -= offer.OfferedMoney
	to.Money += offer.OfferedMoney
	to.Money -= offer.RequestedMoney
	from.Money += offer.RequestedMoney
	from.JailFreeCards -= offer.OfferedJailFreeCards
	to.JailFreeCards += offer.OfferedJailFreeCards
	to.JailFreeCards -= offer.RequestedJailFreeCards
	from.JailFreeCards += offer.RequestedJailFreeCards
	for _, tileID := range offer.OfferedProperties {
		e.transferOwnership(r, tileID, from, to)
	}
	for _, tileID := range offer.RequestedProperties {
		e.transferOwnership(r, tileID, to, from)
	}

	offer.Status = TradeAccepted
	r.ActiveTrade = nil
	e.addEvent(r, EventTrade, to.ID, fmt.Sprintf("%s accepted the trade with %s", to.Name, from.Name))
	e.resolvePendingDebt(r, from)
	e.resolvePendingDebt(r, to)
	return nil
}

func (e *Engine) offerStillValid(r *Room, offer *TradeOffer, from, to *Player) bool {
	if from.Money < offer.OfferedMoney || to.Money < offer.RequestedMoney {
		return false
	}
	if from.JailFreeCards < offer.OfferedJailFreeCards || to.JailFreeCards < offer.RequestedJailFreeCards {
		return false
	}
	for _, tileID := range offer.OfferedProperties {
		own := r.Ownership(tileID)
		if own == nil || own.OwnerID != from.ID || own.Houses > 0 || own.Mortgaged != offer.mortgagedAtProposal[tileID] {
			return false
		}
	}
	for _, tileID := range offer.RequestedProperties {
		own := r.Ownership(tileID)
		if own == nil || own.OwnerID != to.ID || own.Houses > 0 || own.Mortgaged != offer.mortgagedAtProposal[tileID] {
			return false
		}
	}
	return true
}

func (e *Engine) transferOwnership(r *Room, tileID int, from, to *Player) {
	own := r.Ownership(tileID)
	if own == nil {
		return
	}
	own.OwnerID = to.ID
	for i, id := range from.Properties {
		if id == tileID {
			from.Properties = append(from.Properties[:i], from.Properties[i+1:]...)
			break
		}
	}
	to.Properties = append(to.Properties, tileID)
}

// CounterTrade replaces the open trade with a reversed offer from its
// recipient.
func (e *Engine) CounterTrade(r *Room, playerID string, terms TradeTerms) (*TradeOffer, error) {
	p, err := e.economyActor(r, playerID)
	if err != nil {
		return nil, err
	}
	old := r.ActiveTrade
	if old == nil {
		return nil, ErrNoActiveTrade
	}
	if old.ToPlayerID != p.ID {
		return nil, ErrNotYourTrade
	}

	target := r.Player(old.FromPlayerID)
	if target == nil || target.IsBankrupt {
		r.ActiveTrade = nil
		return nil, ErrTradeChanged
	}
	terms.ToPlayerID = target.ID
	offer, err := e.buildOffer(r, p, target, terms, true, old.ID)
	if err != nil {
		return nil, err
	}
	old.Status = TradeCountered
	r.ActiveTrade = offer
	e.addEvent(r, EventTrade, p.ID, fmt.Sprintf("%s made a counter offer to %s", p.Name, target.Name))
	return offer, nil
}

// CancelTrade withdraws the proposer's own open offer.
func (e *Engine) CancelTrade(r *Room, playerID string) error {
	offer := r.ActiveTrade
	if offer == nil {
		return ErrNoActiveTrade
	}
	if offer.FromPlayerID != playerID {
		return ErrNotYourTrade
	}
	offer.Status = TradeCancelled
	r.ActiveTrade = nil
	if p := r.Player(playerID); p != nil {
		e.addEvent(r, EventTrade, p.ID, fmt.Sprintf("%s cancelled the trade", p.Name))
	}
	return nil
}
