package vortex

import (
	"github.com/taigrr/liftline/pkg/math3d"
	"github.com/taigrr/liftline/pkg/shape"
)

// HorseshoeSegments is the number of filaments in one station's ring.
const HorseshoeSegments = 4

// Lattice is a set of closed horseshoe rings, one per spanwise station.
//
// Station i has bound endpoints A = a[i] and B = b[i] and wake endpoints
// A' = A + wake and B' = B + wake. Its four filaments are stored block-major,
// so filament k belongs to station k mod N:
//
//	block 0: A  -> B   (bound)
//	block 1: B  -> B'  (trailing)
//	block 2: B' -> A'  (closing)
//	block 3: A' -> A   (trailing)
type Lattice struct {
	Stations int
	Node1    []math3d.Vec3
	Node2    []math3d.Vec3
	L0       []float64
}

// Horseshoes builds the ring lattice for bound segments a[i]->b[i] shed
// along wake. Every filament of a ring uses the ring's bound length as its
// regularization length.
func Horseshoes(a, b []math3d.Vec3, wake math3d.Vec3) (*Lattice, error) {
	n := len(a)
	if err := shape.Len("vortex.Horseshoes", "b", n, len(b)); err != nil {
		return nil, err
	}

	l := &Lattice{
		Stations: n,
		Node1:    make([]math3d.Vec3, HorseshoeSegments*n),
		Node2:    make([]math3d.Vec3, HorseshoeSegments*n),
		L0:       make([]float64, HorseshoeSegments*n),
	}
	for i := range n {
		A, B := a[i], b[i]
		Aw, Bw := A.Add(wake), B.Add(wake)
		ends := [HorseshoeSegments][2]math3d.Vec3{
			{A, B},
			{B, Bw},
			{Bw, Aw},
			{Aw, A},
		}
		width := B.Distance(A)
		for blk, e := range ends {
			k := blk*n + i
			l.Node1[k], l.Node2[k] = e[0], e[1]
			l.L0[k] = width
		}
	}
	return l, nil
}

// Owner returns the station that filament k belongs to.
func (l *Lattice) Owner(k int) int {
	return k % l.Stations
}

// Len returns the number of filaments.
func (l *Lattice) Len() int {
	return len(l.Node1)
}

// Influence evaluates the per-unit-circulation influence of every filament
// at the control points.
func (l *Lattice) Influence(k Kernel, xcp []math3d.Vec3) (*Influence, error) {
	return k.Induce(xcp, l.Node1, l.Node2, []float64{1}, l.L0)
}

// Bound returns the bound filament endpoints of every station.
func (l *Lattice) Bound() (node1, node2 []math3d.Vec3) {
	return l.Node1[:l.Stations], l.Node2[:l.Stations]
}
