package charger

import "gonum.org/v1/gonum/spatial/kdtree"

// chargerPoint is a 2D kd-tree node carrying the index of its charger record.
type chargerPoint struct {
	x, y float64
	idx  int
}

func (p chargerPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(chargerPoint)
	switch d {
	case 0:
		return p.x - q.x
	default:
		return p.y - q.y
	}
}

func (p chargerPoint) Dims() int { return 2 }

func (p chargerPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(chargerPoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

// chargerPoints implements kdtree.Interface for tree construction.
type chargerPoints []chargerPoint

func (p chargerPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p chargerPoints) Len() int                      { return len(p) }
func (p chargerPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}
func (p chargerPoints) Pivot(d kdtree.Dim) int {
	return chargerPlane{Dim: d, chargerPoints: p}.pivot()
}

// chargerPlane sorts chargerPoints along one dimension.
type chargerPlane struct {
	kdtree.Dim
	chargerPoints
}

func (p chargerPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.chargerPoints[i].x < p.chargerPoints[j].x
	default:
		return p.chargerPoints[i].y < p.chargerPoints[j].y
	}
}

func (p chargerPlane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p chargerPlane) Slice(start, end int) kdtree.SortSlicer {
	p.chargerPoints = p.chargerPoints[start:end]
	return p
}

func (p chargerPlane) Swap(i, j int) {
	p.chargerPoints[i], p.chargerPoints[j] = p.chargerPoints[j], p.chargerPoints[i]
}
