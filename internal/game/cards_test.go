package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monopoly-be/internal/board"
)

func chanceCard(text string, action board.CardAction) board.Card {
	return board.Card{ID: 99, Deck: board.Chance, Text: text, Action: action}
}

func TestDrawCardBlocksUntilDismissed(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	e.draw = func(deck board.DeckKind) board.Card {
		return chanceCard("Bank pays you a dividend of $50", board.Collect{Amount: 50})
	}
	setDice(e, []int{3, 4}) // chance at 7

	_, err := e.RollDice(r, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1550, p.Money)
	require.NotNil(t, r.GameState.CurrentCard)
	assert.Equal(t, BlockCard, r.GameState.Block)
	assert.ErrorIs(t, e.EndTurn(r, p.ID), ErrCannotEndTurn)

	require.NoError(t, e.DismissCard(r, p.ID))
	assert.Nil(t, r.GameState.CurrentCard)
	assert.ErrorIs(t, e.DismissCard(r, p.ID), ErrNoCard)
	require.NoError(t, e.EndTurn(r, p.ID))
}

func TestCardPayDebitsAndChecksBankruptcy(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Money = 10

	e.applyCard(r, p, chanceCard("Pay a fine of $100", board.Pay{Amount: 100}))
	assert.True(t, p.IsBankrupt, "no holdings to mortgage means bankruptcy on the spot")
	assert.Equal(t, PhaseFinished, r.GameState.Phase)
}

func TestCardMoveToPaysBonusOnlyOnWrap(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Position = 7

	e.applyCard(r, p, chanceCard("Advance to Makkah City", board.MoveTo{Position: 39}))
	assert.Equal(t, 39, p.Position)
	assert.Equal(t, 1500, p.Money, "moving forward without wrapping pays nothing")

	p.Position = 36
	e.applyCard(r, p, chanceCard("Advance to Start", board.MoveTo{Position: 0}))
	assert.Equal(t, 0, p.Position)
	assert.Equal(t, 1500+PassGoBonus, p.Money)
}

func TestCardMoveBackRetriggersLanding(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Position = 7

	e.applyCard(r, p, chanceCard("Go back 3 spaces", board.MoveBack{Spaces: 3}))
	assert.Equal(t, 4, p.Position)
	assert.Equal(t, 1300, p.Money, "landing on the tax tile after moving back still taxes")
}

func TestCardSendToJail(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Position = 7

	e.applyCard(r, p, chanceCard("Go to jail", board.SendToJail{}))
	assert.True(t, p.InJail)
	assert.Equal(t, board.JailPos, p.Position)
	assert.Equal(t, 1500, p.Money, "the jail route never pays the start bonus")
}

func TestCardJailFree(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	e.applyCard(r, p, chanceCard("Get out of jail free", board.JailFree{}))
	assert.Equal(t, 1, p.JailFreeCards)
}

func TestCardCollectFromEach(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	p := current(r)

	e.applyCard(r, p, chanceCard("Collect $10 from every player", board.CollectFromEach{Amount: 10}))
	assert.Equal(t, 1520, p.Money)
	for _, other := range r.Players {
		if other.ID != p.ID {
			assert.Equal(t, 1490, other.Money)
		}
	}
}

func TestCardCollectFromEachBankruptsPayer(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	p := current(r)
	broke := otherPlayer(r, p)
	broke.Money = 5

	e.applyCard(r, p, chanceCard("Collect $100 from every player", board.CollectFromEach{Amount: 100}))
	assert.True(t, broke.IsBankrupt)
	assert.Equal(t, PhasePlaying, r.GameState.Phase, "two players remain")
}

func TestCardPayEach(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	p := current(r)

	e.applyCard(r, p, chanceCard("Pay every player $50", board.PayEach{Amount: 50}))
	assert.Equal(t, 1400, p.Money)
	for _, other := range r.Players {
		if other.ID != p.ID {
			assert.Equal(t, 1550, other.Money)
		}
	}
}

func TestCardRepairs(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	giveProperty(r, p, 1).Houses = 3
	giveProperty(r, p, 3).Houses = HotelHouses

	e.applyCard(r, p, chanceCard("Repairs: $25 per house, $100 per hotel", board.Repairs{PerHouse: 25, PerHotel: 100}))
	assert.Equal(t, 1500-3*25-100, p.Money)
}

func TestCardNearestStationDoublesRent(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 15)
	giveProperty(r, owner, 25)
	p.Position = 7

	e.applyCard(r, p, chanceCard("Advance to the nearest station", board.NearestStation{}))
	assert.Equal(t, 15, p.Position)
	require.NotNil(t, r.GameState.MustPayRent)
	assert.Equal(t, 100, r.GameState.MustPayRent.Amount, "two stations at 50, doubled")
}

func TestCardNearestUtilityRollsFresh(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 12)
	p.Position = 7
	setDice(e, []int{4, 5})

	e.applyCard(r, p, chanceCard("Advance to the nearest utility", board.NearestUtility{}))
	assert.Equal(t, 12, p.Position)
	require.NotNil(t, r.GameState.MustPayRent)
	assert.Equal(t, 90, r.GameState.MustPayRent.Amount, "ten times a fresh roll")
}

func TestCardNearestStationWrapsPastStart(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Position = 36

	e.applyCard(r, p, chanceCard("Advance to the nearest station", board.NearestStation{}))
	assert.Equal(t, 5, p.Position)
	assert.Equal(t, 1500+PassGoBonus, p.Money)
}
