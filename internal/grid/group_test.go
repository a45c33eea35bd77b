package grid

import (
	"reflect"
	"sort"
	"testing"

	"github.com/moviegrid/moviegrid/internal/domain"
)

func movie(id, title string, fun, good float64) domain.Movie {
	return domain.Movie{ID: id, Title: title, Fun: fun, Good: good}
}

func TestGroupsEmpty(t *testing.T) {
	if got := Groups(nil); len(got) != 0 {
		t.Fatalf("Groups(nil) = %v, want empty", got)
	}
}

func TestGroupsPartition(t *testing.T) {
	movies := []domain.Movie{
		movie("a", "Alien", 7, 7),
		movie("b", "Brazil", 7, 7),
		movie("c", "Casablanca", 3, 9),
	}

	groups := Groups(movies)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	byKey := make(map[Key]Group)
	for _, g := range groups {
		byKey[g.Key()] = g
	}
	big, ok := byKey[KeyOf(7, 7)]
	if !ok {
		t.Fatalf("no group at (7,7)")
	}
	if got := big.IDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("(7,7) ids = %v, want [a b]", got)
	}
	single, ok := byKey[KeyOf(3, 9)]
	if !ok {
		t.Fatalf("no group at (3,9)")
	}
	if got := single.IDs(); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("(3,9) ids = %v, want [c]", got)
	}
}

func TestGroupsKeyedByNormalizedScores(t *testing.T) {
	// Raw drag noise collapses onto the same cell; out-of-range values
	// clamp first.
	movies := []domain.Movie{
		movie("a", "A", 6.999, 7.04),
		movie("b", "B", 7.0, 7.0),
		movie("c", "C", 12, 7),
	}
	groups := Groups(movies)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	for _, g := range groups {
		switch g.Key() {
		case KeyOf(7, 7):
			if len(g.Items) != 2 {
				t.Fatalf("(7,7) has %d items, want 2", len(g.Items))
			}
		case KeyOf(10, 7):
			if len(g.Items) != 1 {
				t.Fatalf("(10,7) has %d items, want 1", len(g.Items))
			}
		default:
			t.Fatalf("unexpected group at %+v", g.Key())
		}
	}
}

func TestGroupsItemOrder(t *testing.T) {
	movies := []domain.Movie{
		movie("1", "zodiac", 5, 5),
		movie("2", "Amadeus", 5, 5),
		movie("3", "heat", 5, 5),
	}
	groups := Groups(movies)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	titles := make([]string, 0, 3)
	for _, it := range groups[0].Items {
		titles = append(titles, it.Title)
	}
	want := []string{"Amadeus", "heat", "zodiac"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("item order = %v, want %v", titles, want)
	}
}

func TestGroupsAllDistinct(t *testing.T) {
	movies := []domain.Movie{
		movie("a", "A", 1, 1),
		movie("b", "B", 2, 2),
		movie("c", "C", 3, 3),
	}
	groups := Groups(movies)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3 singletons", len(groups))
	}
	for _, g := range groups {
		if len(g.Items) != 1 {
			t.Fatalf("group %+v has %d items, want 1", g.Key(), len(g.Items))
		}
	}
}

func TestGroupsReferentiallyTransparent(t *testing.T) {
	movies := []domain.Movie{
		movie("a", "Alien", 7, 7),
		movie("b", "Brazil", 7, 7),
		movie("c", "Casablanca", 3, 9),
		movie("d", "Dune", 0, 10),
	}
	first := Groups(movies)
	second := Groups(movies)

	normalize := func(groups []Group) map[Key][]string {
		out := make(map[Key][]string)
		for _, g := range groups {
			ids := g.IDs()
			sort.Strings(ids)
			out[g.Key()] = ids
		}
		return out
	}
	if !reflect.DeepEqual(normalize(first), normalize(second)) {
		t.Fatalf("two derivations disagree: %v vs %v", first, second)
	}

	// Every movie appears in exactly one group.
	seen := make(map[string]int)
	for _, g := range first {
		for _, it := range g.Items {
			seen[it.ID]++
		}
	}
	for _, m := range movies {
		if seen[m.ID] != 1 {
			t.Fatalf("movie %s appears %d times", m.ID, seen[m.ID])
		}
	}
}
