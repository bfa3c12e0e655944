// Package cell describes the reference cells that elements are constructed
// on: vertex geometry, sub-entity topology and outward facet normals.
// Simplex coordinates are unit-simplex coordinates (vertices at the origin
// and the unit points along each axis).
package cell

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Type identifies a reference cell shape.
type Type int

const (
	Point Type = iota
	Interval
	Triangle
	Quadrilateral
	Tetrahedron
	Hexahedron
)

func (t Type) String() string {
	switch t {
	case Point:
		return "point"
	case Interval:
		return "interval"
	case Triangle:
		return "triangle"
	case Quadrilateral:
		return "quadrilateral"
	case Tetrahedron:
		return "tetrahedron"
	case Hexahedron:
		return "hexahedron"
	}
	return fmt.Sprintf("cell.Type(%d)", int(t))
}

// vertices of each reference cell, row per vertex.
var geometry = map[Type][][]float64{
	Point:         {{}},
	Interval:      {{0}, {1}},
	Triangle:      {{0, 0}, {1, 0}, {0, 1}},
	Quadrilateral: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	Tetrahedron:   {{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	Hexahedron: {
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	},
}

// topology[t][dim] lists the vertex indices of each sub-entity of that
// dimension, in ascending vertex order.
var topology = map[Type][][][]int{
	Interval: {
		{{0}, {1}},
		{{0, 1}},
	},
	Triangle: {
		{{0}, {1}, {2}},
		{{1, 2}, {0, 2}, {0, 1}},
		{{0, 1, 2}},
	},
	Tetrahedron: {
		{{0}, {1}, {2}, {3}},
		{{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
		{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
		{{0, 1, 2, 3}},
	},
}

// TopologicalDimension returns the dimension of the cell.
func TopologicalDimension(t Type) int {
	switch t {
	case Point:
		return 0
	case Interval:
		return 1
	case Triangle, Quadrilateral:
		return 2
	case Tetrahedron, Hexahedron:
		return 3
	}
	panic("cell: unknown cell type")
}

// Geometry returns the vertex coordinates of the reference cell, one row
// per vertex.
func Geometry(t Type) *mat.Dense {
	verts, ok := geometry[t]
	if !ok {
		panic("cell: unknown cell type")
	}
	gdim := len(verts[0])
	g := mat.NewDense(len(verts), max(gdim, 1), nil)
	for i, v := range verts {
		for j, x := range v {
			g.Set(i, j, x)
		}
	}
	return g
}

// NumSubEntities returns the number of sub-entities of the given dimension,
// or an error when the cell's topology is not tabulated.
func NumSubEntities(t Type, dim int) (int, error) {
	topo, ok := topology[t]
	if !ok || dim < 0 || dim >= len(topo) {
		return 0, fmt.Errorf("cell: no dimension-%d sub-entities for %s", dim, t)
	}
	return len(topo[dim]), nil
}

// SubEntityGeometry returns the vertex coordinates of sub-entity index of
// dimension dim, one row per vertex, in the cell's coordinates.
func SubEntityGeometry(t Type, dim, index int) (*mat.Dense, error) {
	topo, ok := topology[t]
	if !ok || dim < 0 || dim >= len(topo) {
		return nil, fmt.Errorf("cell: no dimension-%d sub-entities for %s", dim, t)
	}
	if index < 0 || index >= len(topo[dim]) {
		return nil, fmt.Errorf("cell: %s has no dimension-%d sub-entity %d", t, dim, index)
	}
	g := Geometry(t)
	verts := topo[dim][index]
	sub := mat.NewDense(len(verts), TopologicalDimension(t), nil)
	for i, v := range verts {
		for j := 0; j < TopologicalDimension(t); j++ {
			sub.Set(i, j, g.At(v, j))
		}
	}
	return sub, nil
}

// FacetNormal returns the outward normal of the given facet, scaled by the
// facet's reference measure (edge length in 2D, twice the face area in 3D).
// The scaling is what makes facet moment integrals pick up the correct
// surface measure from a reference-facet quadrature rule.
func FacetNormal(t Type, index int) ([]float64, error) {
	tdim := TopologicalDimension(t)
	facet, err := SubEntityGeometry(t, tdim-1, index)
	if err != nil {
		return nil, err
	}

	switch tdim {
	case 2:
		// Rotate the edge vector by 90 degrees. Edge 1 runs against the
		// boundary orientation and needs an explicit flip.
		n := []float64{
			facet.At(1, 1) - facet.At(0, 1),
			facet.At(0, 0) - facet.At(1, 0),
		}
		if index == 1 {
			n[0], n[1] = -n[0], -n[1]
		}
		return n, nil
	case 3:
		var e0, e1 [3]float64
		for j := 0; j < 3; j++ {
			e0[j] = facet.At(1, j) - facet.At(0, j)
			e1[j] = facet.At(2, j) - facet.At(0, j)
		}
		n := []float64{
			e1[1]*e0[2] - e1[2]*e0[1],
			e1[2]*e0[0] - e1[0]*e0[2],
			e1[0]*e0[1] - e1[1]*e0[0],
		}
		// The ascending-vertex face ordering does not give the cross
		// product a consistent orientation, so check it against the
		// cell-centroid to facet-centroid direction and flip if inward.
		g := Geometry(t)
		nv, _ := g.Dims()
		nf, _ := facet.Dims()
		dot := 0.0
		for j := 0; j < 3; j++ {
			cc, fc := 0.0, 0.0
			for i := 0; i < nv; i++ {
				cc += g.At(i, j)
			}
			for i := 0; i < nf; i++ {
				fc += facet.At(i, j)
			}
			dot += n[j] * (fc/float64(nf) - cc/float64(nv))
		}
		if dot < 0 {
			for j := range n {
				n[j] = -n[j]
			}
		}
		return n, nil
	}
	return nil, fmt.Errorf("cell: no facet normals for %s", t)
}
