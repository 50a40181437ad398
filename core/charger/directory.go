// Package charger holds the read-only charging-infrastructure specification
// and the nearest-charger selection used when staging a stop.
package charger

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/betsim/betroute/core/model"
)

// Directory indexes chargers by type for nearest-distance queries. It is
// populated once before the planning phase and never mutated afterwards, so
// concurrent lookups need no locking.
type Directory struct {
	chargers []model.Charger
	trees    map[string]*kdtree.Tree
}

// NewDirectory validates the records and builds one spatial index per
// charger type.
func NewDirectory(chargers []model.Charger) (*Directory, error) {
	d := &Directory{
		chargers: chargers,
		trees:    make(map[string]*kdtree.Tree),
	}
	byType := make(map[string]chargerPoints)
	for i, c := range chargers {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("charger directory: %w", err)
		}
		byType[c.Type] = append(byType[c.Type], chargerPoint{x: c.Coord.X, y: c.Coord.Y, idx: i})
	}
	for typ, pts := range byType {
		d.trees[typ] = kdtree.New(pts, false)
	}
	return d, nil
}

// Len returns the number of chargers in the directory.
func (d *Directory) Len() int { return len(d.chargers) }

// Chargers returns the underlying records.
func (d *Directory) Chargers() []model.Charger { return d.chargers }

// Nearest returns up to k chargers of the given types closest to c by
// straight-line distance, nearest first.
func (d *Directory) Nearest(c model.Coord, types []string, k int) []model.Charger {
	if k <= 0 {
		return nil
	}
	query := chargerPoint{x: c.X, y: c.Y}
	type hit struct {
		dist float64
		idx  int
	}
	var hits []hit
	for _, typ := range types {
		tree, ok := d.trees[typ]
		if !ok {
			continue
		}
		keeper := kdtree.NewNKeeper(k)
		tree.NearestSet(keeper, query)
		for _, cd := range keeper.Heap {
			if cd.Comparable == nil {
				continue
			}
			p := cd.Comparable.(chargerPoint)
			hits = append(hits, hit{dist: cd.Dist, idx: p.idx})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].idx < hits[j].idx
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	out := make([]model.Charger, len(hits))
	for i, h := range hits {
		out[i] = d.chargers[h.idx]
	}
	return out
}
