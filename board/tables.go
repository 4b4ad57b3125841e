package board

import "math/bits"

// attackTables holds every precomputed attack set. The full set is built in
// one pass by newAttackTables so no consumer can ever observe a partially
// initialized table; after construction it is read-only.
type attackTables struct {
	pawnAttacks [2][64]uint64
	knight      [64]uint64
	king        [64]uint64

	// Directional rays, occupancy-ignorant. Rook order N,S,E,W; bishop
	// order NE,NW,SE,SW. Used for check/pin scans and table building.
	rookRays   [64][4]uint64
	bishopRays [64][4]uint64
	queenRays  [64]uint64

	// Occupancy-indexed slider attacks, keyed by pext over the relevant
	// blocker mask.
	rookMask   [64]uint64
	bishopMask [64]uint64
	rookAtt    [64][]uint64
	bishopAtt  [64][]uint64
}

// Positive directions scan toward higher square indexes, so the nearest
// blocker is the lowest set bit; negative directions are the reverse.
var (
	rookDirDelta   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	rookDirPos     = [4]bool{true, false, true, false}
	bishopDirDelta = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	bishopDirPos   = [4]bool{true, true, false, false}
)

var tbl = newAttackTables()

// newAttackTables builds the complete immutable table set. Order matters:
// rays feed the slider attack generator, which feeds the occupancy-indexed
// tables, so everything happens inside this single constructor.
func newAttackTables() *attackTables {
	t := &attackTables{}
	t.buildLeapers()
	t.buildRays()
	t.buildSliderTables()
	return t
}

func (t *attackTables) buildLeapers() {
	knightDeltas := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas := [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	for s := Square(0); s < 64; s++ {
		f, r := s.File(), s.Rank()
		for _, d := range knightDeltas {
			if nf, nr := f+d[0], r+d[1]; nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				t.knight[s] |= squareBB(SquareOf(nf, nr))
			}
		}
		for _, d := range kingDeltas {
			if nf, nr := f+d[0], r+d[1]; nf >= 0 && nf < 8 && nr >= 0 && nr < 8 {
				t.king[s] |= squareBB(SquareOf(nf, nr))
			}
		}
		if r < 7 {
			if f > 0 {
				t.pawnAttacks[White][s] |= squareBB(SquareOf(f-1, r+1))
			}
			if f < 7 {
				t.pawnAttacks[White][s] |= squareBB(SquareOf(f+1, r+1))
			}
		}
		if r > 0 {
			if f > 0 {
				t.pawnAttacks[Black][s] |= squareBB(SquareOf(f-1, r-1))
			}
			if f < 7 {
				t.pawnAttacks[Black][s] |= squareBB(SquareOf(f+1, r-1))
			}
		}
	}
}

func (t *attackTables) buildRays() {
	for s := Square(0); s < 64; s++ {
		for d := 0; d < 4; d++ {
			t.rookRays[s][d] = castRay(s, rookDirDelta[d])
			t.bishopRays[s][d] = castRay(s, bishopDirDelta[d])
			t.queenRays[s] |= t.rookRays[s][d] | t.bishopRays[s][d]
		}
	}
}

func castRay(s Square, delta [2]int) uint64 {
	var ray uint64
	f, r := s.File()+delta[0], s.Rank()+delta[1]
	for f >= 0 && f < 8 && r >= 0 && r < 8 {
		ray |= squareBB(SquareOf(f, r))
		f += delta[0]
		r += delta[1]
	}
	return ray
}

func (t *attackTables) buildSliderTables() {
	for s := Square(0); s < 64; s++ {
		t.rookMask[s] = t.relevantMask(s, &t.rookRays, rookDirPos)
		t.bishopMask[s] = t.relevantMask(s, &t.bishopRays, bishopDirPos)
		t.rookAtt[s] = t.fillSubsets(s, t.rookMask[s], &t.rookRays, rookDirPos)
		t.bishopAtt[s] = t.fillSubsets(s, t.bishopMask[s], &t.bishopRays, bishopDirPos)
	}
}

// relevantMask drops the farthest square of each ray: an edge blocker never
// changes the attack set, so it need not be indexed.
func (t *attackTables) relevantMask(s Square, rays *[64][4]uint64, pos [4]bool) uint64 {
	var mask uint64
	for d := 0; d < 4; d++ {
		ray := rays[s][d]
		if ray == 0 {
			continue
		}
		var far Square
		if pos[d] {
			far = Square(63 - bits.LeadingZeros64(ray))
		} else {
			far = Square(bits.TrailingZeros64(ray))
		}
		mask |= ray &^ squareBB(far)
	}
	return mask
}

// fillSubsets enumerates every blocker subset of mask with the carry-rippler
// trick and records the resulting attack set at its pext index.
func (t *attackTables) fillSubsets(s Square, mask uint64, rays *[64][4]uint64, pos [4]bool) []uint64 {
	table := make([]uint64, 1<<PopCount(mask))
	occ := uint64(0)
	for {
		table[pext(occ, mask)] = rayAttacks(s, occ, rays, pos)
		occ = (occ - mask) & mask
		if occ == 0 {
			break
		}
	}
	return table
}

// rayAttacks computes slider attacks by scanning each ray to its first
// blocker. Only used while building tables and never on the hot path.
func rayAttacks(s Square, occ uint64, rays *[64][4]uint64, pos [4]bool) uint64 {
	var att uint64
	for d := 0; d < 4; d++ {
		ray := rays[s][d]
		att |= ray
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		var first Square
		if pos[d] {
			first = Square(bits.TrailingZeros64(blockers))
		} else {
			first = Square(63 - bits.LeadingZeros64(blockers))
		}
		att &^= rays[first][d]
	}
	return att
}

// pext is a portable parallel-bit-extract: gathers the bits of src selected
// by mask into the low bits of the result.
func pext(src, mask uint64) uint64 {
	var res, bit uint64 = 0, 1
	for mask != 0 {
		if src&mask&-mask != 0 {
			res |= bit
		}
		mask &= mask - 1
		bit <<= 1
	}
	return res
}

// RookAttacks returns rook attack squares from s given total occupancy.
func RookAttacks(s Square, occ uint64) uint64 {
	return tbl.rookAtt[s][pext(occ, tbl.rookMask[s])]
}

// BishopAttacks returns bishop attack squares from s given total occupancy.
func BishopAttacks(s Square, occ uint64) uint64 {
	return tbl.bishopAtt[s][pext(occ, tbl.bishopMask[s])]
}

// QueenAttacks returns the rook and bishop union.
func QueenAttacks(s Square, occ uint64) uint64 {
	return RookAttacks(s, occ) | BishopAttacks(s, occ)
}

// KnightAttacks returns the knight attack set from s.
func KnightAttacks(s Square) uint64 { return tbl.knight[s] }

// KingAttacks returns the king attack set from s.
func KingAttacks(s Square) uint64 { return tbl.king[s] }

// PawnAttacks returns the squares a pawn of color c on s attacks.
func PawnAttacks(c Color, s Square) uint64 { return tbl.pawnAttacks[c][s] }
