package catalogstub

import "github.com/abelbrown/bestiary/internal/catalog"

type listResponse struct {
	Count   int         `json:"count"`
	Next    *string     `json:"next"`
	Results []listEntry `json:"results"`
}

type listEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type named struct {
	Name string `json:"name"`
}

type detailResponse struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Sprites sprites `json:"sprites"`
	Stats   []stat  `json:"stats"`
	Moves   []move  `json:"moves"`
	Types   []slot  `json:"types"`
}

type sprites struct {
	Other struct {
		OfficialArtwork struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type stat struct {
	BaseStat int   `json:"base_stat"`
	Stat     named `json:"stat"`
}

type move struct {
	Move named `json:"move"`
}

type slot struct {
	Slot int   `json:"slot"`
	Type named `json:"type"`
}

func toDetail(it catalog.Item) detailResponse {
	d := detailResponse{
		ID:    it.ID,
		Name:  it.Name,
		Stats: []stat{},
		Moves: []move{},
		Types: []slot{},
	}
	if it.Artwork != "" {
		art := it.Artwork
		d.Sprites.Other.OfficialArtwork.FrontDefault = &art
	}
	for _, s := range it.Stats {
		d.Stats = append(d.Stats, stat{BaseStat: s.Value, Stat: named{Name: s.Name}})
	}
	for _, m := range it.Moves {
		d.Moves = append(d.Moves, move{Move: named{Name: m.Name}})
	}
	for _, c := range it.Categories {
		d.Types = append(d.Types, slot{Slot: c.Slot, Type: named{Name: c.Name}})
	}
	return d
}
