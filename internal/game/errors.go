package game

import "errors"

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrWrongPhase       = errors.New("not allowed in this phase")
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("game already started")
	ErrCannotRoll       = errors.New("you cannot roll the dice now")
	ErrCannotEndTurn    = errors.New("you cannot end your turn now")
	ErrRentDue          = errors.New("rent must be paid first")
	ErrNoRentDue        = errors.New("no rent to pay")
	ErrNoCard           = errors.New("no card to dismiss")
	ErrNotPurchasable   = errors.New("this tile cannot be bought")
	ErrAlreadyOwned     = errors.New("this property is already owned")
	ErrInsufficientFund = errors.New("not enough money")
	ErrNotOwner         = errors.New("you do not own this property")
	ErrMortgaged        = errors.New("property is mortgaged")
	ErrNotMortgaged     = errors.New("property is not mortgaged")
	ErrHasHouses        = errors.New("sell the houses first")
	ErrNotInJail        = errors.New("you are not in jail")
	ErrNoJailFreeCard   = errors.New("you have no jail free card")
	ErrNoActiveTrade    = errors.New("no active trade")
	ErrTradeActive      = errors.New("a trade is already active")
	ErrNotYourTrade     = errors.New("this trade is not addressed to you")
	ErrTradeChanged     = errors.New("holdings changed, trade voided")
	ErrNoPendingDebt    = errors.New("no pending bankruptcy")
	ErrCanStillMortgage = errors.New("you still have properties to mortgage")
	ErrNotEnoughPlayers = errors.New("at least two players required")
	ErrPlayersNotReady  = errors.New("all players must be ready")
	ErrBankruptPlayer   = errors.New("bankrupt players cannot act")
)
