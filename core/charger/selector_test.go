package charger

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/betsim/betroute/core/model"
)

func testChargers() []model.Charger {
	return []model.Charger{
		{ID: "c1", Type: "mcs", Power: 640e3, Coord: model.Coord{X: 0, Y: 0}},
		{ID: "c2", Type: "mcs", Power: 640e3, Coord: model.Coord{X: 100, Y: 0}},
		{ID: "c3", Type: "mcs", Power: 640e3, Coord: model.Coord{X: 5000, Y: 0}},
		{ID: "c4", Type: "ccs", Power: 350e3, Coord: model.Coord{X: 10, Y: 0}},
		{ID: "c5", Type: "ccs", Power: 350e3, Coord: model.Coord{X: 9000, Y: 9000}},
	}
}

func TestDirectoryNearestFiltersByType(t *testing.T) {
	dir, err := NewDirectory(testChargers())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	got := dir.Nearest(model.Coord{X: 0, Y: 0}, []string{"mcs"}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 chargers got %d", len(got))
	}
	if got[0].ID != "c1" || got[1].ID != "c2" {
		t.Fatalf("unexpected order %s, %s", got[0].ID, got[1].ID)
	}
}

func TestDirectoryNearestMergesTypes(t *testing.T) {
	dir, err := NewDirectory(testChargers())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	got := dir.Nearest(model.Coord{X: 0, Y: 0}, []string{"mcs", "ccs"}, 2)
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c4" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestDirectoryNearestMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	chargers := make([]model.Charger, 200)
	for i := range chargers {
		chargers[i] = model.Charger{
			ID:    "c" + string(rune('0'+i%10)) + string(rune('a'+i/10)),
			Type:  "mcs",
			Power: 640e3,
			Coord: model.Coord{X: rng.Float64() * 1e5, Y: rng.Float64() * 1e5},
		}
	}
	dir, err := NewDirectory(chargers)
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	for trial := 0; trial < 20; trial++ {
		q := model.Coord{X: rng.Float64() * 1e5, Y: rng.Float64() * 1e5}
		got := dir.Nearest(q, []string{"mcs"}, 2)

		dists := make([]float64, len(chargers))
		for i, c := range chargers {
			dists[i] = q.DistanceTo(c.Coord)
		}
		sorted := append([]float64(nil), dists...)
		sort.Float64s(sorted)
		for i := 0; i < 2; i++ {
			if d := q.DistanceTo(got[i].Coord); math.Abs(d-sorted[i]) > 1e-6 {
				t.Fatalf("trial %d: rank %d distance %v want %v", trial, i, d, sorted[i])
			}
		}
	}
}

func TestSelectorNoCompatibleCharger(t *testing.T) {
	dir, err := NewDirectory(testChargers())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	sel := NewSelector(dir, 2, rand.New(rand.NewSource(1)))
	_, err = sel.Select(model.Coord{}, []string{"chademo"})
	if !errors.Is(err, ErrNoCharger) {
		t.Fatalf("expected ErrNoCharger got %v", err)
	}
}

func TestSelectorDrawsFromNearestCandidates(t *testing.T) {
	dir, err := NewDirectory(testChargers())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	sel := NewSelector(dir, 2, rand.New(rand.NewSource(42)))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := sel.Select(model.Coord{X: 0, Y: 0}, []string{"mcs"})
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		seen[c.ID] = true
		if c.ID == "c3" {
			t.Fatalf("c3 is not among the two nearest")
		}
	}
	if !seen["c1"] || !seen["c2"] {
		t.Fatalf("expected a uniform draw over both candidates, saw %v", seen)
	}
}

func TestSelectorSingleCandidate(t *testing.T) {
	dir, err := NewDirectory(testChargers()[:1])
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	sel := NewSelector(dir, 2, rand.New(rand.NewSource(1)))
	c, err := sel.Select(model.Coord{X: 50, Y: 50}, []string{"mcs"})
	if err != nil || c.ID != "c1" {
		t.Fatalf("unexpected result %v %v", c, err)
	}
}

func TestDirectoryRejectsInvalidCharger(t *testing.T) {
	_, err := NewDirectory([]model.Charger{{ID: "bad", Type: "mcs", Power: 0}})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}
