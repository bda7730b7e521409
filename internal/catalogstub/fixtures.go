package catalogstub

import (
	"fmt"

	"github.com/abelbrown/bestiary/internal/catalog"
)

const artworkBase = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// Starters returns a deterministic fixture set: the first nine creatures of
// the public catalog with trimmed stats and moves.
func Starters() []catalog.Item {
	type row struct {
		id    int
		name  string
		types []string
		moves []string
		stats [3]int
	}
	rows := []row{
		{1, "bulbasaur", []string{"grass", "poison"}, []string{"razor-wind", "swords-dance", "cut"}, [3]int{45, 49, 49}},
		{2, "ivysaur", []string{"grass", "poison"}, []string{"swords-dance", "cut", "bind"}, [3]int{60, 62, 63}},
		{3, "venusaur", []string{"grass", "poison"}, []string{"swords-dance", "cut", "bind"}, [3]int{80, 82, 83}},
		{4, "charmander", []string{"fire"}, []string{"mega-punch", "fire-punch", "thunder-punch"}, [3]int{39, 52, 43}},
		{5, "charmeleon", []string{"fire"}, []string{"mega-punch", "fire-punch", "thunder-punch"}, [3]int{58, 64, 58}},
		{6, "charizard", []string{"fire", "flying"}, []string{"mega-punch", "fire-punch", "thunder-punch"}, [3]int{78, 84, 78}},
		{7, "squirtle", []string{"water"}, []string{"mega-punch", "ice-punch", "mega-kick"}, [3]int{44, 48, 65}},
		{8, "wartortle", []string{"water"}, []string{"mega-punch", "ice-punch", "mega-kick"}, [3]int{59, 63, 80}},
		{9, "blastoise", []string{"water"}, []string{"mega-punch", "ice-punch", "mega-kick"}, [3]int{79, 83, 100}},
	}

	items := make([]catalog.Item, 0, len(rows))
	for _, r := range rows {
		it := catalog.Item{
			ID:      r.id,
			Name:    r.name,
			Artwork: fmt.Sprintf(artworkBase, r.id),
			Stats: []catalog.Stat{
				{Name: "hp", Value: r.stats[0]},
				{Name: "attack", Value: r.stats[1]},
				{Name: "defense", Value: r.stats[2]},
			},
		}
		for _, m := range r.moves {
			it.Moves = append(it.Moves, catalog.Move{Name: m})
		}
		for i, t := range r.types {
			it.Categories = append(it.Categories, catalog.Category{Name: t, Slot: i + 1})
		}
		items = append(items, it)
	}
	return items
}
