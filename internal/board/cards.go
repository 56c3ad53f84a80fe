package board

import "math/rand"

// CardAction is a sealed union over the card effect kinds.
type CardAction interface{ cardAction() }

type Collect struct{ Amount int }
type Pay struct{ Amount int }
type MoveTo struct{ Position int }
type MoveBack struct{ Spaces int }
type SendToJail struct{}
type JailFree struct{}
type CollectFromEach struct{ Amount int }
type PayEach struct{ Amount int }
type Repairs struct{ PerHouse, PerHotel int }
type NearestStation struct{}
type NearestUtility struct{}

func (Collect) cardAction()         {}
func (Pay) cardAction()             {}
func (MoveTo) cardAction()          {}
func (MoveBack) cardAction()        {}
func (SendToJail) cardAction()      {}
func (JailFree) cardAction()        {}
func (CollectFromEach) cardAction() {}
func (PayEach) cardAction()         {}
func (Repairs) cardAction()         {}
func (NearestStation) cardAction()  {}
func (NearestUtility) cardAction()  {}

type Card struct {
	ID     int        `json:"id"`
	Deck   DeckKind   `json:"deck"`
	Text   string     `json:"text"`
	Action CardAction `json:"-"`
}

var ChanceCards = []Card{
	{ID: 1, Deck: Chance, Text: "Advance to Makkah City", Action: MoveTo{Position: 39}},
	{ID: 2, Deck: Chance, Text: "Advance to Start (collect 200)", Action: MoveTo{Position: 0}},
	{ID: 3, Deck: Chance, Text: "Advance to Baghdad City. If you pass Start, collect 200", Action: MoveTo{Position: 14}},
	{ID: 4, Deck: Chance, Text: "Advance to Beirut City. If you pass Start, collect 200", Action: MoveTo{Position: 6}},
	{ID: 5, Deck: Chance, Text: "Advance to the nearest railway station. If unowned you may buy it; if owned, pay double rent", Action: NearestStation{}},
	{ID: 6, Deck: Chance, Text: "Advance to the nearest railway station. If unowned you may buy it; if owned, pay double rent", Action: NearestStation{}},
	{ID: 7, Deck: Chance, Text: "Advance to the nearest utility. If unowned you may buy it; if owned, roll the dice and pay ten times the total", Action: NearestUtility{}},
	{ID: 8, Deck: Chance, Text: "The bank pays you a dividend of 50", Action: Collect{Amount: 50}},
	{ID: 9, Deck: Chance, Text: "Get out of jail free", Action: JailFree{}},
	{ID: 10, Deck: Chance, Text: "Go back 3 spaces", Action: MoveBack{Spaces: 3}},
	{ID: 11, Deck: Chance, Text: "Go directly to jail. Do not pass Start, do not collect 200", Action: SendToJail{}},
	{ID: 12, Deck: Chance, Text: "Make general repairs on your properties: pay 25 per house and 100 per hotel", Action: Repairs{PerHouse: 25, PerHotel: 100}},
	{ID: 13, Deck: Chance, Text: "Speeding fine of 15", Action: Pay{Amount: 15}},
	{ID: 14, Deck: Chance, Text: "Take a trip to Misr Railway Station. If you pass Start, collect 200", Action: MoveTo{Position: 5}},
	{ID: 15, Deck: Chance, Text: "You have been elected chairman of the board. Pay each player 50", Action: PayEach{Amount: 50}},
	{ID: 16, Deck: Chance, Text: "Your building loan matures. Collect 150", Action: Collect{Amount: 150}},
}

var CommunityCards = []Card{
	{ID: 1, Deck: Community, Text: "Advance to Start (collect 200)", Action: MoveTo{Position: 0}},
	{ID: 2, Deck: Community, Text: "Bank error in your favor. Collect 200", Action: Collect{Amount: 200}},
	{ID: 3, Deck: Community, Text: "Doctor's fees. Pay 50", Action: Pay{Amount: 50}},
	{ID: 4, Deck: Community, Text: "From sale of stock you get 50", Action: Collect{Amount: 50}},
	{ID: 5, Deck: Community, Text: "Get out of jail free", Action: JailFree{}},
	{ID: 6, Deck: Community, Text: "Go directly to jail. Do not pass Start, do not collect 200", Action: SendToJail{}},
	{ID: 7, Deck: Community, Text: "Holiday fund matures. Collect 100", Action: Collect{Amount: 100}},
	{ID: 8, Deck: Community, Text: "Income tax refund. Collect 20", Action: Collect{Amount: 20}},
	{ID: 9, Deck: Community, Text: "It is your birthday! Collect 10 from every player", Action: CollectFromEach{Amount: 10}},
	{ID: 10, Deck: Community, Text: "Life insurance matures. Collect 100", Action: Collect{Amount: 100}},
	{ID: 11, Deck: Community, Text: "Pay hospital fees of 100", Action: Pay{Amount: 100}},
	{ID: 12, Deck: Community, Text: "Pay school fees of 50", Action: Pay{Amount: 50}},
	{ID: 13, Deck: Community, Text: "Receive a consultancy fee of 25", Action: Collect{Amount: 25}},
	{ID: 14, Deck: Community, Text: "You are assessed for street repairs: 40 per house, 115 per hotel", Action: Repairs{PerHouse: 40, PerHotel: 115}},
	{ID: 15, Deck: Community, Text: "You won second prize in a beauty contest. Collect 10", Action: Collect{Amount: 10}},
	{ID: 16, Deck: Community, Text: "You inherit 100", Action: Collect{Amount: 100}},
}

// RandomCard draws one card from the given deck. Draws are independent:
// the deck is sampled with replacement, never exhausted or reshuffled.
func RandomCard(deck DeckKind, rng *rand.Rand) Card {
	cards := CommunityCards
	if deck == Chance {
		cards = ChanceCards
	}
	return cards[rng.Intn(len(cards))]
}
