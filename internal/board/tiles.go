package board

// Size is the number of tiles on the board.
const Size = 40

// Well-known positions.
const (
	StartPos = 0
	JailPos  = 10
)

// StationPositions and UtilityPositions in board order.
var (
	StationPositions = []int{5, 15, 25, 35}
	UtilityPositions = []int{12, 28}
)

type ColorGroup string

const (
	Brown     ColorGroup = "brown"
	LightBlue ColorGroup = "lightblue"
	Pink      ColorGroup = "pink"
	Orange    ColorGroup = "orange"
	Red       ColorGroup = "red"
	Yellow    ColorGroup = "yellow"
	Green     ColorGroup = "green"
	Blue      ColorGroup = "blue"
)

type CornerKind string

const (
	Start       CornerKind = "start"
	Jail        CornerKind = "jail"
	GoToJail    CornerKind = "go-to-jail"
	FreeParking CornerKind = "free-parking"
)

type DeckKind string

const (
	Chance    DeckKind = "chance"
	Community DeckKind = "community"
)

// Tile is a sealed union over the six tile kinds. Switch on the concrete
// type to access kind-specific fields; there are no untyped accessors.
type Tile interface {
	TileID() int
	TileName() string
	sealed()
}

type Property struct {
	ID        int
	Name      string
	Color     ColorGroup
	Price     int
	Rent      [6]int // indexed by house count, 5 = hotel
	HouseCost int
}

type Station struct {
	ID    int
	Name  string
	Price int
	Rent  [4]int // indexed by owned station count - 1
}

type Utility struct {
	ID    int
	Name  string
	Price int
}

type Tax struct {
	ID     int
	Name   string
	Amount int
}

type CardSpace struct {
	ID   int
	Name string
	Deck DeckKind
}

type Corner struct {
	ID   int
	Name string
	Kind CornerKind
}

func (t Property) TileID() int   { return t.ID }
func (t Station) TileID() int    { return t.ID }
func (t Utility) TileID() int    { return t.ID }
func (t Tax) TileID() int        { return t.ID }
func (t CardSpace) TileID() int  { return t.ID }
func (t Corner) TileID() int     { return t.ID }

func (t Property) TileName() string  { return t.Name }
func (t Station) TileName() string   { return t.Name }
func (t Utility) TileName() string   { return t.Name }
func (t Tax) TileName() string       { return t.Name }
func (t CardSpace) TileName() string { return t.Name }
func (t Corner) TileName() string    { return t.Name }

func (Property) sealed()  {}
func (Station) sealed()   {}
func (Utility) sealed()   {}
func (Tax) sealed()       {}
func (CardSpace) sealed() {}
func (Corner) sealed()    {}

// Tiles is the full 40-tile board in position order.
var Tiles = [Size]Tile{
	Corner{ID: 0, Name: "Start", Kind: Start},
	Property{ID: 1, Name: "Cairo City", Color: Brown, Price: 60, Rent: [6]int{2, 10, 30, 90, 160, 250}, HouseCost: 50},
	CardSpace{ID: 2, Name: "Community Chest", Deck: Community},
	Property{ID: 3, Name: "Damascus City", Color: Brown, Price: 60, Rent: [6]int{4, 20, 60, 180, 320, 450}, HouseCost: 50},
	Tax{ID: 4, Name: "Income Tax", Amount: 200},
	Station{ID: 5, Name: "Misr Railway Station", Price: 200, Rent: [4]int{25, 50, 100, 200}},
	Property{ID: 6, Name: "Beirut City", Color: LightBlue, Price: 100, Rent: [6]int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	CardSpace{ID: 7, Name: "Chance", Deck: Chance},
	Property{ID: 8, Name: "Amman City", Color: LightBlue, Price: 100, Rent: [6]int{6, 30, 90, 270, 400, 550}, HouseCost: 50},
	Property{ID: 9, Name: "Jerusalem City", Color: LightBlue, Price: 120, Rent: [6]int{8, 40, 100, 300, 450, 600}, HouseCost: 50},
	Corner{ID: 10, Name: "Jail", Kind: Jail},
	Property{ID: 11, Name: "Mosul City", Color: Pink, Price: 140, Rent: [6]int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	Utility{ID: 12, Name: "Electric Company", Price: 150},
	Property{ID: 13, Name: "Basra City", Color: Pink, Price: 140, Rent: [6]int{10, 50, 150, 450, 625, 750}, HouseCost: 100},
	Property{ID: 14, Name: "Baghdad City", Color: Pink, Price: 160, Rent: [6]int{12, 60, 180, 500, 700, 900}, HouseCost: 100},
	Station{ID: 15, Name: "Tanger Railway Station", Price: 200, Rent: [4]int{25, 50, 100, 200}},
	Property{ID: 16, Name: "Tunisia City", Color: Orange, Price: 180, Rent: [6]int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	CardSpace{ID: 17, Name: "Community Chest", Deck: Community},
	Property{ID: 18, Name: "Algiers City", Color: Orange, Price: 180, Rent: [6]int{14, 70, 200, 550, 750, 950}, HouseCost: 100},
	Property{ID: 19, Name: "Rabat City", Color: Orange, Price: 200, Rent: [6]int{16, 80, 220, 600, 800, 1000}, HouseCost: 100},
	Corner{ID: 20, Name: "Free Parking", Kind: FreeParking},
	Property{ID: 21, Name: "Kuwait City", Color: Red, Price: 220, Rent: [6]int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	CardSpace{ID: 22, Name: "Chance", Deck: Chance},
	Property{ID: 23, Name: "Manama City", Color: Red, Price: 220, Rent: [6]int{18, 90, 250, 700, 875, 1050}, HouseCost: 150},
	Property{ID: 24, Name: "Doha City", Color: Red, Price: 240, Rent: [6]int{20, 100, 300, 750, 925, 1100}, HouseCost: 150},
	Station{ID: 25, Name: "Dubai Railway Station", Price: 200, Rent: [4]int{25, 50, 100, 200}},
	Property{ID: 26, Name: "Muscat City", Color: Yellow, Price: 260, Rent: [6]int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	Property{ID: 27, Name: "Dubai City", Color: Yellow, Price: 260, Rent: [6]int{22, 110, 330, 800, 975, 1150}, HouseCost: 150},
	Utility{ID: 28, Name: "Water Company", Price: 150},
	Property{ID: 29, Name: "Abu Dhabi City", Color: Yellow, Price: 280, Rent: [6]int{24, 120, 360, 850, 1025, 1200}, HouseCost: 150},
	Corner{ID: 30, Name: "Go to Jail", Kind: GoToJail},
	Property{ID: 31, Name: "Dammam City", Color: Green, Price: 300, Rent: [6]int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	Property{ID: 32, Name: "Jeddah City", Color: Green, Price: 300, Rent: [6]int{26, 130, 390, 900, 1100, 1275}, HouseCost: 200},
	CardSpace{ID: 33, Name: "Community Chest", Deck: Community},
	Property{ID: 34, Name: "Riyadh City", Color: Green, Price: 320, Rent: [6]int{28, 150, 450, 1000, 1200, 1400}, HouseCost: 200},
	Station{ID: 35, Name: "Mecca Railway Station", Price: 200, Rent: [4]int{25, 50, 100, 200}},
	CardSpace{ID: 36, Name: "Chance", Deck: Chance},
	Property{ID: 37, Name: "Medina City", Color: Blue, Price: 350, Rent: [6]int{35, 175, 500, 1100, 1300, 1500}, HouseCost: 200},
	Tax{ID: 38, Name: "Income Tax", Amount: 100},
	Property{ID: 39, Name: "Makkah City", Color: Blue, Price: 400, Rent: [6]int{50, 200, 600, 1400, 1700, 2000}, HouseCost: 200},
}

// TileByID returns the tile at the given position, or nil if out of range.
func TileByID(id int) Tile {
	if id < 0 || id >= Size {
		return nil
	}
	return Tiles[id]
}

// PurchasePrice returns the price of a purchasable tile. ok is false for
// tiles that cannot be owned.
func PurchasePrice(t Tile) (price int, ok bool) {
	switch tt := t.(type) {
	case Property:
		return tt.Price, true
	case Station:
		return tt.Price, true
	case Utility:
		return tt.Price, true
	default:
		return 0, false
	}
}

// MortgageValue returns half the purchase price, or 0 for unpurchasable
// tiles.
func MortgageValue(tileID int) int {
	if price, ok := PurchasePrice(TileByID(tileID)); ok {
		return price / 2
	}
	return 0
}

// ColorOf returns the color group of a property tile.
func ColorOf(tileID int) (ColorGroup, bool) {
	if p, ok := TileByID(tileID).(Property); ok {
		return p.Color, true
	}
	return "", false
}

// PropertiesByColor returns the ids of every property in a color group.
func PropertiesByColor(color ColorGroup) []int {
	var ids []int
	for _, t := range Tiles {
		if p, ok := t.(Property); ok && p.Color == color {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// PlayerColors is the fixed token palette; each room assigns distinct
// colors in order.
var PlayerColors = []string{
	"#E74C3C", // red
	"#3498DB", // blue
	"#2ECC71", // green
	"#F39C12", // orange
	"#9B59B6", // purple
	"#1ABC9C", // teal
}

// GroupColorHex maps color groups (and the non-property kinds) to display
// colors.
func GroupColorHex(color string) string {
	colors := map[string]string{
		"brown":     "#8B4513",
		"lightblue": "#87CEEB",
		"pink":      "#FF69B4",
		"orange":    "#FFA500",
		"red":       "#EF4444",
		"yellow":    "#EAB308",
		"green":     "#22C55E",
		"blue":      "#3B82F6",
		"station":   "#4A4A4A",
		"utility":   "#6B7280",
	}
	if hex, ok := colors[color]; ok {
		return hex
	}
	return "#6B7280"
}
