package board

import "math/rand"

// zobristKeys holds the random keys folded into the position hash. The seed
// is fixed so hashes are reproducible across runs.
type zobristKeys struct {
	piece    [16][64]uint64
	castling [16]uint64
	epFile   [8]uint64
	side     uint64
}

var zobrist = newZobristKeys()

func newZobristKeys() *zobristKeys {
	rng := rand.New(rand.NewSource(0x4845524F4E))
	z := &zobristKeys{}
	for p := WhitePawn; p <= BlackKing; p++ {
		if p.Type() == NoType {
			continue
		}
		for s := Square(0); s < 64; s++ {
			z.piece[p][s] = rng.Uint64()
		}
	}
	for i := range z.castling {
		z.castling[i] = rng.Uint64()
	}
	for i := range z.epFile {
		z.epFile[i] = rng.Uint64()
	}
	z.side = rng.Uint64()
	return z
}

// ComputeZobrist recomputes the hash from scratch. The incremental hash must
// equal this value after any sequence of applies and undos; tests traverse
// game trees asserting exactly that.
func (b *Board) ComputeZobrist() uint64 {
	var h uint64
	for s := Square(0); s < 64; s++ {
		if p := b.pieces[s]; p != NoPiece {
			h ^= zobrist.piece[p][s]
		}
	}
	h ^= zobrist.castling[b.castling]
	if b.epSquare != NoSquare {
		h ^= zobrist.epFile[b.epSquare.File()]
	}
	if b.sideToMove == Black {
		h ^= zobrist.side
	}
	return h
}
