package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMortgageAndUnmortgage(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	giveProperty(r, p, 1) // Cairo City, price 60

	value, err := e.MortgageProperty(r, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, value)
	assert.Equal(t, 1530, p.Money)
	assert.True(t, r.Ownership(1).Mortgaged)

	_, err = e.MortgageProperty(r, p.ID, 1)
	assert.ErrorIs(t, err, ErrMortgaged)

	require.NoError(t, e.UnmortgageProperty(r, p.ID, 1))
	assert.Equal(t, 1530-33, p.Money, "redeeming costs the value plus 10%")
	assert.False(t, r.Ownership(1).Mortgaged)

	assert.ErrorIs(t, e.UnmortgageProperty(r, p.ID, 1), ErrNotMortgaged)
}

func TestMortgageRequiresOwnershipAndNoHouses(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	other := otherPlayer(r, p)
	giveProperty(r, other, 1)

	_, err := e.MortgageProperty(r, p.ID, 1)
	assert.ErrorIs(t, err, ErrNotOwner)

	own := giveProperty(r, p, 3)
	own.Houses = 2
	_, err = e.MortgageProperty(r, p.ID, 3)
	assert.ErrorIs(t, err, ErrHasHouses)
}

func TestBuildHousesEvenly(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	giveProperty(r, p, 1)
	giveProperty(r, p, 3)

	require.NoError(t, e.BuildHouse(r, p.ID, 1))
	assert.Equal(t, 1450, p.Money)
	assert.Equal(t, 1, r.Ownership(1).Houses)

	err := e.BuildHouse(r, p.ID, 1)
	require.Error(t, err, "the second house must go on the other brown tile first")

	require.NoError(t, e.BuildHouse(r, p.ID, 3))
	require.NoError(t, e.BuildHouse(r, p.ID, 1))
	assert.Equal(t, 2, r.Ownership(1).Houses)
	assert.Equal(t, 1, r.Ownership(3).Houses)
}

func TestBuildableProperties(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)

	assert.Empty(t, r.BuildableProperties(p.ID), "no holdings yet")

	giveProperty(r, p, 1)
	assert.Empty(t, r.BuildableProperties(p.ID), "incomplete group")

	giveProperty(r, p, 3)
	assert.ElementsMatch(t, []int{1, 3}, r.BuildableProperties(p.ID))

	require.NoError(t, e.BuildHouse(r, p.ID, 1))
	assert.ElementsMatch(t, []int{3}, r.BuildableProperties(p.ID), "even rule narrows the choice")

	r.Ownership(3).Mortgaged = true
	assert.Empty(t, r.BuildableProperties(p.ID), "mortgaged tile blocks the group")

	r.Ownership(3).Mortgaged = false
	p.Money = 10
	assert.Empty(t, r.BuildableProperties(p.ID), "cannot afford a house")
}

func TestBuildRequiresFullUnmortgagedGroup(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	giveProperty(r, p, 1)

	assert.ErrorIs(t, e.BuildHouse(r, p.ID, 1), ErrNotOwner, "missing the rest of the group")

	own := giveProperty(r, p, 3)
	own.Mortgaged = true
	assert.ErrorIs(t, e.BuildHouse(r, p.ID, 1), ErrMortgaged)
}

func TestBuildUpToHotelAndNoFurther(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	p.Money = 5000
	giveProperty(r, p, 1)
	giveProperty(r, p, 3)

	for i := 0; i < HotelHouses; i++ {
		require.NoError(t, e.BuildHouse(r, p.ID, 1))
		require.NoError(t, e.BuildHouse(r, p.ID, 3))
	}
	assert.Equal(t, HotelHouses, r.Ownership(1).Houses)
	assert.Error(t, e.BuildHouse(r, p.ID, 1))
}

func TestSellHousesEvenly(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	giveProperty(r, p, 1).Houses = 2
	giveProperty(r, p, 3).Houses = 1

	err := e.SellHouse(r, p.ID, 3)
	require.Error(t, err, "tear down from the taller tile first")

	require.NoError(t, e.SellHouse(r, p.ID, 1))
	assert.Equal(t, 1, r.Ownership(1).Houses)
	assert.Equal(t, 1525, p.Money, "half the house cost comes back")
}

func TestRentScalesWithHouses(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	owner := otherPlayer(r, current(r))
	own := giveProperty(r, owner, 1)
	own.Houses = 3
	assert.Equal(t, 90, e.calculateRent(r, own))
	own.Houses = HotelHouses
	assert.Equal(t, 250, e.calculateRent(r, own))
}

func TestPendingBankruptcyResolvedByMortgage(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 39) // Makkah City, rent 50
	giveProperty(r, p, 1)      // worth 30 mortgaged
	p.Money = 20
	p.Position = 32
	setDice(e, []int{3, 4})

	_, err := e.RollDice(r, p.ID)
	require.NoError(t, err)
	require.NoError(t, e.PayRent(r, p.ID))
	assert.Equal(t, -30, p.Money)
	require.NotNil(t, r.GameState.PendingBankrupt)
	assert.Equal(t, 30, r.GameState.PendingBankrupt.AmountOwed)
	assert.Equal(t, BlockBankruptcy, r.GameState.Block)
	assert.ErrorIs(t, e.EndTurn(r, p.ID), ErrCannotEndTurn)

	_, err = e.MortgageProperty(r, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Money)
	assert.Nil(t, r.GameState.PendingBankrupt)
	require.NoError(t, e.EndTurn(r, p.ID))
}

func TestDeclareRejectedWhileMortgageValueCovers(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 39)
	giveProperty(r, p, 1)
	p.Money = 20
	p.Position = 32
	setDice(e, []int{3, 4})

	_, err := e.RollDice(r, p.ID)
	require.NoError(t, err)
	require.NoError(t, e.PayRent(r, p.ID))
	require.NotNil(t, r.GameState.PendingBankrupt)

	// Deficit 30, mortgage value 30: conceding is not allowed yet.
	assert.ErrorIs(t, e.DeclareBankruptcy(r, p.ID), ErrCanStillMortgage)
	assert.False(t, p.IsBankrupt)
	assert.NotNil(t, r.GameState.PendingBankrupt)

	_, err = e.MortgageProperty(r, p.ID, 1)
	require.NoError(t, err)
	assert.Nil(t, r.GameState.PendingBankrupt)
}

func TestPendingBankruptcyDeclared(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 39)
	giveProperty(r, p, 1)
	p.Money = 0
	p.Position = 32
	setDice(e, []int{3, 4})

	_, err := e.RollDice(r, p.ID)
	require.NoError(t, err)
	require.NoError(t, e.PayRent(r, p.ID))
	require.NotNil(t, r.GameState.PendingBankrupt)

	// Deficit 50 against mortgage value 30: the debt is unrecoverable.
	require.NoError(t, e.DeclareBankruptcy(r, p.ID))
	assert.True(t, p.IsBankrupt)
	assert.Equal(t, owner.ID, r.Ownership(1).OwnerID, "the estate goes to the creditor")
	assert.Contains(t, owner.Properties, 1)
	assert.Equal(t, PhaseFinished, r.GameState.Phase)
	assert.Equal(t, owner.ID, r.GameState.Winner)
}

func TestImmediateBankruptcyWithoutHoldings(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	p := current(r)
	owner := otherPlayer(r, p)
	giveProperty(r, owner, 39)
	p.Money = 20
	p.Position = 32
	setDice(e, []int{3, 4})

	_, err := e.RollDice(r, p.ID)
	require.NoError(t, err)
	require.NoError(t, e.PayRent(r, p.ID))
	assert.True(t, p.IsBankrupt)
	assert.Nil(t, r.GameState.PendingBankrupt)
	assert.Equal(t, PhaseFinished, r.GameState.Phase)
}

func TestDeclareWithoutPendingDebt(t *testing.T) {
	e, r := newStartedRoom(t, 2)
	assert.ErrorIs(t, e.DeclareBankruptcy(r, current(r).ID), ErrNoPendingDebt)
}

func TestBankruptPlayerCannotAct(t *testing.T) {
	e, r := newStartedRoom(t, 3)
	p := current(r)
	e.bankrupt(r, p, "")
	e.nextTurn(r)

	_, err := e.RollDice(r, p.ID)
	assert.ErrorIs(t, err, ErrBankruptPlayer)
	_, err = e.MortgageProperty(r, p.ID, 1)
	assert.ErrorIs(t, err, ErrBankruptPlayer)
}
