package grid

import (
	"sort"
	"strings"

	"github.com/moviegrid/moviegrid/internal/domain"
	"github.com/moviegrid/moviegrid/internal/score"
)

// Key identifies a grid cell by its normalized scores in integer tenths,
// so movies compare exactly and the key is usable in maps.
type Key struct {
	FunTenths  int
	GoodTenths int
}

// KeyOf derives the cell key for a (fun, good) pair.
func KeyOf(fun, good float64) Key {
	return Key{FunTenths: score.Tenths(fun), GoodTenths: score.Tenths(good)}
}

// Fun returns the key's fun score.
func (k Key) Fun() float64 { return float64(k.FunTenths) / 10 }

// Good returns the key's good score.
func (k Key) Good() float64 { return float64(k.GoodTenths) / 10 }

// Item is the render-ready view of one movie inside a group.
type Item struct {
	ID    string
	Title string
}

// Group aggregates the movies sharing one normalized (fun, good) cell.
// Items are ordered by ascending case-insensitive title.
type Group struct {
	Fun   float64
	Good  float64
	Items []Item
}

// Key returns the group's cell key.
func (g Group) Key() Key { return KeyOf(g.Fun, g.Good) }

// IDs returns the ids of the group's items in item order.
func (g Group) IDs() []string {
	ids := make([]string, len(g.Items))
	for i, it := range g.Items {
		ids[i] = it.ID
	}
	return ids
}

// Groups partitions movies by normalized (fun, good) cell. It is stateless
// and derives the partition from scratch on every call: two movies land in
// the same group exactly when their normalized score pairs are equal.
// Group iteration order is unspecified.
func Groups(movies []domain.Movie) []Group {
	return groupsExcluding(movies, nil)
}

func groupsExcluding(movies []domain.Movie, skip map[string]struct{}) []Group {
	cells := make(map[Key]*Group)
	order := make([]Key, 0)
	for _, m := range movies {
		if _, excluded := skip[m.ID]; excluded {
			continue
		}
		key := KeyOf(m.Fun, m.Good)
		g, ok := cells[key]
		if !ok {
			g = &Group{Fun: key.Fun(), Good: key.Good()}
			cells[key] = g
			order = append(order, key)
		}
		g.Items = append(g.Items, Item{ID: m.ID, Title: m.Title})
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		g := cells[key]
		sort.SliceStable(g.Items, func(i, j int) bool {
			return strings.ToLower(g.Items[i].Title) < strings.ToLower(g.Items[j].Title)
		})
		groups = append(groups, *g)
	}
	return groups
}
