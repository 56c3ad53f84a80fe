package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeAccepted(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)
	giveProperty(r, from, 1)
	giveProperty(r, to, 39)
	from.JailFreeCards = 1

	offer, err := e.ProposeTrade(r, from.ID, TradeTerms{
		ToPlayerID:           to.ID,
		OfferedProperties:    []int{1},
		RequestedProperties:  []int{39},
		OfferedMoney:         100,
		OfferedJailFreeCards: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, TradePending, offer.Status)
	require.NotNil(t, r.ActiveTrade)

	require.NoError(t, e.RespondTrade(r, to.ID, true))
	assert.Nil(t, r.ActiveTrade)
	assert.Equal(t, to.ID, r.Ownership(1).OwnerID)
	assert.Equal(t, from.ID, r.Ownership(39).OwnerID)
	assert.Equal(t, 1400, from.Money)
	assert.Equal(t, 1600, to.Money)
	assert.Equal(t, 0, from.JailFreeCards)
	assert.Equal(t, 1, to.JailFreeCards)
	assert.Contains(t, to.Properties, 1)
	assert.NotContains(t, from.Properties, 1)
	assert.Contains(t, from.Properties, 39)
}

func TestTradeRejected(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)
	giveProperty(r, from, 1)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedProperties: []int{1}})
	require.NoError(t, err)
	require.NoError(t, e.RespondTrade(r, to.ID, false))
	assert.Nil(t, r.ActiveTrade)
	assert.Equal(t, from.ID, r.Ownership(1).OwnerID)
}

func TestOnlyOneTradeAtATime(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	from := current(r)
	to := otherPlayer(r, from)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 10})
	require.NoError(t, err)
	_, err = e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 20})
	assert.ErrorIs(t, err, ErrTradeActive)
}

func TestTradeVoidedByMortgageChange(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)
	giveProperty(r, from, 1)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedProperties: []int{1}, RequestedMoney: 40})
	require.NoError(t, err)

	// Mortgaging the offered tile between proposal and acceptance voids
	// the whole trade.
	_, err = e.MortgageProperty(r, from.ID, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, e.RespondTrade(r, to.ID, true), ErrTradeChanged)
	assert.Nil(t, r.ActiveTrade)
	assert.Equal(t, from.ID, r.Ownership(1).OwnerID)
	assert.Equal(t, 1500, to.Money)
}

func TestTradeVoidedByOwnershipChange(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	from := current(r)
	to := otherPlayer(r, from)
	giveProperty(r, from, 1)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedProperties: []int{1}})
	require.NoError(t, err)

	r.Ownership(1).OwnerID = "someone-else"
	assert.ErrorIs(t, e.RespondTrade(r, to.ID, true), ErrTradeChanged)
	assert.Nil(t, r.ActiveTrade)
}

func TestTradeRespondWrongPlayer(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 10})
	require.NoError(t, err)
	assert.ErrorIs(t, e.RespondTrade(r, from.ID, true), ErrNotYourTrade)
}

func TestCounterTradeSwapsRoles(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)
	giveProperty(r, to, 39)

	original, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 100})
	require.NoError(t, err)

	counter, err := e.CounterTrade(r, to.ID, TradeTerms{OfferedProperties: []int{39}, RequestedMoney: 300})
	require.NoError(t, err)
	assert.Equal(t, to.ID, counter.FromPlayerID)
	assert.Equal(t, from.ID, counter.ToPlayerID)
	assert.True(t, counter.IsCounterOffer)
	assert.Equal(t, original.ID, counter.OriginalOfferID)
	assert.Equal(t, TradeCountered, original.Status)

	require.NoError(t, e.RespondTrade(r, from.ID, true))
	assert.Equal(t, from.ID, r.Ownership(39).OwnerID)
	assert.Equal(t, 1200, from.Money)
	assert.Equal(t, 1800, to.Money)
}

func TestCancelTrade(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, e.CancelTrade(r, to.ID), ErrNotYourTrade)
	require.NoError(t, e.CancelTrade(r, from.ID))
	assert.Nil(t, r.ActiveTrade)
	assert.ErrorIs(t, e.CancelTrade(r, from.ID), ErrNoActiveTrade)
}

func TestProposeValidatesHoldings(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	from := current(r)
	to := otherPlayer(r, from)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedProperties: []int{1}})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 9999})
	assert.ErrorIs(t, err, ErrInsufficientFund)

	_, err = e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedJailFreeCards: 1})
	assert.ErrorIs(t, err, ErrNoJailFreeCard)

	own := giveProperty(r, from, 1)
	own.Houses = 1
	_, err = e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedProperties: []int{1}})
	assert.ErrorIs(t, err, ErrHasHouses)
}

func TestBankruptcyClearsActiveTrade(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	from := current(r)
	to := otherPlayer(r, from)

	_, err := e.ProposeTrade(r, from.ID, TradeTerms{ToPlayerID: to.ID, OfferedMoney: 10})
	require.NoError(t, err)

	e.bankrupt(r, to, "")
	assert.Nil(t, r.ActiveTrade)
}
