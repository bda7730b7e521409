package catalog

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is goroutine-safe.
var validate = validator.New()

// listing is the paginated index: {results:[{name,url}], next, count}.
type listing struct {
	Results []listingEntry `json:"results" validate:"dive"`
	Next    *string        `json:"next"`
	Count   int            `json:"count" validate:"gte=0"`
}

type listingEntry struct {
	Name string `json:"name"`
	URL  string `json:"url" validate:"required"`
}

// detail mirrors the per-creature payload. Only the fields we render are decoded.
type detail struct {
	ID      int    `json:"id" validate:"gt=0"`
	Name    string `json:"name" validate:"required"`
	Sprites struct {
		Other struct {
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Moves []struct {
		Move struct {
			Name string `json:"name"`
		} `json:"move"`
	} `json:"moves"`
	Types []struct {
		Slot int `json:"slot"`
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
}

// toItem converts a validated detail payload to an Item.
func (d *detail) toItem() Item {
	item := Item{
		ID:   d.ID,
		Name: d.Name,
	}
	if art := d.Sprites.Other.OfficialArtwork.FrontDefault; art != nil {
		item.Artwork = *art
	}

	item.Stats = make([]Stat, 0, len(d.Stats))
	for _, s := range d.Stats {
		item.Stats = append(item.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	item.Moves = make([]Move, 0, len(d.Moves))
	for _, m := range d.Moves {
		item.Moves = append(item.Moves, Move{Name: m.Move.Name})
	}
	item.Categories = make([]Category, 0, len(d.Types))
	for _, t := range d.Types {
		item.Categories = append(item.Categories, Category{Name: t.Type.Name, Slot: t.Slot})
	}
	return item
}
