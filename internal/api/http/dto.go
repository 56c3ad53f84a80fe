package http

import "monopoly-be/internal/board"

// TileDTO is the client-facing board tile shape.
type TileDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Price     int    `json:"price,omitempty"`
	Rent      []int  `json:"rent,omitempty"`
	HouseCost int    `json:"houseCost,omitempty"`
	TaxAmount int    `json:"taxAmount,omitempty"`
	Group     string `json:"group,omitempty"`
	ColorHex  string `json:"colorHex,omitempty"`
}

// BoardTiles flattens the tile table for clients that render the board.
func BoardTiles() []TileDTO {
	out := make([]TileDTO, 0, board.Size)
	for _, tile := range board.Tiles {
		dto := TileDTO{ID: tile.TileID(), Name: tile.TileName()}
		switch t := tile.(type) {
		case board.Property:
			color, _ := board.ColorOf(t.ID)
			dto.Type = "property"
			dto.Price = t.Price
			dto.Rent = t.Rent[:]
			dto.HouseCost = t.HouseCost
			dto.Group = string(color)
			dto.ColorHex = board.GroupColorHex(string(color))
		case board.Station:
			dto.Type = "station"
			dto.Price = t.Price
			dto.Rent = t.Rent[:]
			dto.ColorHex = board.GroupColorHex("station")
		case board.Utility:
			dto.Type = "utility"
			dto.Price = t.Price
			dto.ColorHex = board.GroupColorHex("utility")
		case board.Tax:
			dto.Type = "tax"
			dto.TaxAmount = t.Amount
		case board.CardSpace:
			dto.Type = "card"
			dto.Group = string(t.Deck)
		case board.Corner:
			dto.Type = "corner"
			dto.Group = string(t.Kind)
		}
		out = append(out, dto)
	}
	return out
}
