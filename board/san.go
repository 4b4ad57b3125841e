package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatchingMove reports move text that matches no legal move from the
// current position.
var ErrNoMatchingMove = errors.New("no matching legal move")

var pieceLetters = [7]byte{Knight: 'N', Bishop: 'B', Rook: 'R', Queen: 'Q', King: 'K'}

// SAN renders m in standard algebraic notation, with disambiguation and
// check/mate suffixes. m must be legal in the current position.
func (b *Board) SAN(m Move) string {
	var sb strings.Builder
	switch {
	case m.Kind == Castle && (m.To == 6 || m.To == 62):
		sb.WriteString("O-O")
	case m.Kind == Castle:
		sb.WriteString("O-O-O")
	default:
		pt := m.Piece.Type()
		if pt == Pawn {
			if m.IsCapture() {
				sb.WriteByte(byte('a' + m.From.File()))
				sb.WriteByte('x')
			}
		} else {
			sb.WriteByte(pieceLetters[pt])
			sb.WriteString(b.disambiguation(m))
			if m.IsCapture() {
				sb.WriteByte('x')
			}
		}
		sb.WriteString(m.To.String())
		if m.Promotion != NoType {
			sb.WriteByte('=')
			sb.WriteByte(pieceLetters[m.Promotion])
		}
	}

	if ok, u := b.MakeMove(m); ok {
		if b.InCheck(b.sideToMove) {
			if len(b.GenerateMoves()) == 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('+')
			}
		}
		b.UnmakeMove(m, u)
	} else {
		b.UnmakeMove(m, u)
	}
	return sb.String()
}

// disambiguation returns the minimal origin qualifier when another piece of
// the same kind can reach the same destination.
func (b *Board) disambiguation(m Move) string {
	var clash, fileClash, rankClash bool
	for _, o := range b.GenerateMoves() {
		if o.To != m.To || o.Piece != m.Piece || o.From == m.From {
			continue
		}
		clash = true
		if o.From.File() == m.From.File() {
			fileClash = true
		}
		if o.From.Rank() == m.From.Rank() {
			rankClash = true
		}
	}
	switch {
	case !clash:
		return ""
	case !fileClash:
		return string([]byte{byte('a' + m.From.File())})
	case !rankClash:
		return string([]byte{byte('1' + m.From.Rank())})
	default:
		return m.From.String()
	}
}

// ParseMove matches text against the current legal moves, accepting
// coordinate notation ("e2e4", "e7e8q") and standard algebraic notation
// ("Nf3", "exd5", "O-O", "e8=Q+"). Failure leaves the position untouched.
func (b *Board) ParseMove(text string) (Move, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return NoMove, fmt.Errorf("%w: empty input", ErrNoMatchingMove)
	}
	legal := b.GenerateMoves()

	if len(t) == 4 || len(t) == 5 {
		if from, err := parseSquare(t[0:2]); err == nil {
			if to, err := parseSquare(t[2:4]); err == nil {
				promo := NoType
				if len(t) == 5 {
					promo = promotionFromLetter(t[4])
					if promo == NoType {
						return NoMove, fmt.Errorf("%w: bad promotion in %q", ErrNoMatchingMove, text)
					}
				}
				for _, m := range legal {
					if m.From == from && m.To == to && m.Promotion == promo {
						return m, nil
					}
				}
				return NoMove, fmt.Errorf("%w: %q", ErrNoMatchingMove, text)
			}
		}
	}

	want := normalizeSAN(t)
	for _, m := range legal {
		if normalizeSAN(b.SAN(m)) == want {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q", ErrNoMatchingMove, text)
}

func promotionFromLetter(ch byte) PieceType {
	switch ch {
	case 'q', 'Q':
		return Queen
	case 'r', 'R':
		return Rook
	case 'b', 'B':
		return Bishop
	case 'n', 'N':
		return Knight
	}
	return NoType
}

// normalizeSAN strips annotation and check suffixes and maps the zero-style
// castling spelling onto the letter form.
func normalizeSAN(s string) string {
	s = strings.TrimRight(s, "+#!?")
	return strings.ReplaceAll(s, "0", "O")
}
