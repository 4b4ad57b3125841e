package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/P7/8/8/8/8/7k/K7 w - - 12 50",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Fatalf("round trip:\n got %q\nwant %q", got, fen)
		}
		if !b.Validate() {
			t.Fatalf("invalid board from %q", fen)
		}
	}
}

func TestParseFENClockDefaults(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	if err != nil {
		t.Fatalf("four-field FEN rejected: %v", err)
	}
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("clock defaults = %d/%d, want 0/1", b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",              // too few fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",          // seven ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank overflow
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"8/8/8/8/8/8/8/8 w - - 0 1",           // no kings
		"kk6/8/8/8/8/8/8/K7 w - - 0 1",        // two black kings
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("ParseFEN(%q) = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestParseFENSanitizesCastling(t *testing.T) {
	// Rights are claimed but the white king and the a8 rook are displaced.
	b, err := ParseFEN("1r2k2r/8/8/8/8/8/8/R2K3R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := b.Castling(); got != BlackKingside {
		t.Fatalf("castling = %04b, want only black kingside", got)
	}
}

func TestNewBoardIsStartPosition(t *testing.T) {
	b := NewBoard()
	if b.FEN() != StartPositionFEN {
		t.Fatalf("NewBoard() = %q", b.FEN())
	}
	if b.SideToMove() != White || b.Castling() != AllCastling || b.EnPassant() != NoSquare {
		t.Fatal("start position metadata wrong")
	}
}
