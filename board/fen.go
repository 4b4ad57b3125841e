package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartPositionFEN is the standard initial position.
const StartPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN reports a malformed position string.
var ErrInvalidFEN = errors.New("invalid FEN")

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b, _ := ParseFEN(StartPositionFEN)
	return b
}

var fenPieces = map[byte]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// ParseFEN parses the six-field notation; the two clock fields may be
// omitted and default to 0 and 1. The returned board has a consistent
// incremental hash.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}

	b := &Board{epSquare: NoSquare, fullmove: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: placement has %d ranks", ErrInvalidFEN, len(ranks))
	}
	for r := 0; r < 8; r++ {
		rank := 7 - r
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := fenPieces[ch]
			if !ok || file > 7 {
				return nil, fmt.Errorf("%w: bad placement rank %q", ErrInvalidFEN, ranks[r])
			}
			b.addPiece(p, SquareOf(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %q covers %d files", ErrInvalidFEN, ranks[r], file)
		}
	}
	if PopCount(b.kings[White]) != 1 || PopCount(b.kings[Black]) != 1 {
		return nil, fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				b.castling |= WhiteKingside
			case 'Q':
				b.castling |= WhiteQueenside
			case 'k':
				b.castling |= BlackKingside
			case 'q':
				b.castling |= BlackQueenside
			default:
				return nil, fmt.Errorf("%w: castling %q", ErrInvalidFEN, fields[2])
			}
		}
	}
	b.sanitizeCastling()

	if fields[3] != "-" {
		sq, err := parseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant %q", ErrInvalidFEN, fields[3])
		}
		b.epSquare = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		b.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
		}
		b.fullmove = n
	}

	b.hash = b.ComputeZobrist()
	return b, nil
}

// sanitizeCastling drops rights whose king or rook is no longer home, so the
// move generator can trust the flags without re-checking placement.
func (b *Board) sanitizeCastling() {
	if b.pieces[4] != WhiteKing {
		b.castling &^= WhiteKingside | WhiteQueenside
	}
	if b.pieces[7] != WhiteRook {
		b.castling &^= WhiteKingside
	}
	if b.pieces[0] != WhiteRook {
		b.castling &^= WhiteQueenside
	}
	if b.pieces[60] != BlackKing {
		b.castling &^= BlackKingside | BlackQueenside
	}
	if b.pieces[63] != BlackRook {
		b.castling &^= BlackKingside
	}
	if b.pieces[56] != BlackRook {
		b.castling &^= BlackQueenside
	}
}

func parseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return SquareOf(int(s[0]-'a'), int(s[1]-'1')), nil
}

// FEN serializes the position; ParseFEN(b.FEN()) round-trips losslessly.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.pieces[SquareOf(file, rank)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if b.castling == 0 {
		sb.WriteByte('-')
	} else {
		for _, c := range []struct {
			r  CastlingRights
			ch byte
		}{{WhiteKingside, 'K'}, {WhiteQueenside, 'Q'}, {BlackKingside, 'k'}, {BlackQueenside, 'q'}} {
			if b.castling&c.r != 0 {
				sb.WriteByte(c.ch)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.epSquare.String())

	fmt.Fprintf(&sb, " %d %d", b.halfmove, b.fullmove)
	return sb.String()
}
