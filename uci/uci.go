// Package uci speaks the text protocol engines and GUIs share: it owns the
// session loop, translates position and go commands into engine calls, and
// streams search output back.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"heron-engine/board"
	"heron-engine/engine"
)

const (
	engineName   = "Heron 1.0"
	engineAuthor = "the Heron authors"
)

// Session binds one engine instance to an input/output stream pair. Search
// runs on its own goroutine so stop and quit stay responsive; everything
// else is sequential.
type Session struct {
	in  io.Reader
	out io.Writer
	log zerolog.Logger
	eng *engine.Engine

	board   *board.Board
	history []uint64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession wires a session around fresh engine state. Protocol output goes
// to out; diagnostics go through log.
func NewSession(in io.Reader, out io.Writer, log zerolog.Logger) *Session {
	s := &Session{in: in, out: out, log: log}
	s.eng = engine.New(engine.Config{Logger: log, InfoWriter: out})
	s.setStartpos()
	return s
}

func (s *Session) setStartpos() {
	s.board = board.NewBoard()
	s.history = []uint64{s.board.Hash()}
}

func (s *Session) reply(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Run processes commands until quit or EOF.
func (s *Session) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 1<<16), 1<<20)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "uci":
			s.reply("id name %s", engineName)
			s.reply("id author %s", engineAuthor)
			s.reply("option name Hash type spin default 64 min 1 max 4096")
			s.reply("option name Move Overhead type spin default 30 min 0 max 1000")
			s.reply("uciok")
		case "isready":
			s.waitSearch()
			s.reply("readyok")
		case "ucinewgame":
			s.waitSearch()
			s.eng.NewGame()
			s.setStartpos()
		case "setoption":
			s.waitSearch()
			s.handleSetOption(fields[1:])
		case "position":
			s.waitSearch()
			if err := s.handlePosition(fields[1:]); err != nil {
				s.log.Error().Err(err).Msg("position rejected")
			}
		case "go":
			s.waitSearch()
			s.handleGo(fields[1:])
		case "stop":
			s.stopSearch()
		case "perft":
			s.waitSearch()
			s.handlePerft(fields[1:])
		case "d":
			s.waitSearch()
			s.draw()
		case "quit":
			s.stopSearch()
			s.waitSearch()
			return nil
		default:
			s.log.Warn().Str("command", fields[0]).Msg("unknown command")
		}
	}
	s.stopSearch()
	s.waitSearch()
	return scanner.Err()
}

func (s *Session) waitSearch() { s.wg.Wait() }

func (s *Session) stopSearch() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
}

func (s *Session) handleSetOption(args []string) {
	var name, value []string
	cur := &name
	for _, a := range args {
		switch a {
		case "name":
			cur = &name
		case "value":
			cur = &value
		default:
			*cur = append(*cur, a)
		}
	}
	switch strings.Join(name, " ") {
	case "Hash":
		if mb, err := strconv.Atoi(strings.Join(value, "")); err == nil && mb > 0 {
			s.eng.SetHashSize(mb)
		}
	case "Move Overhead":
		if ms, err := strconv.Atoi(strings.Join(value, "")); err == nil && ms >= 0 {
			s.eng.SetMoveOverhead(time.Duration(ms) * time.Millisecond)
		}
	default:
		s.log.Warn().Str("option", strings.Join(name, " ")).Msg("unknown option")
	}
}

// handlePosition resets to startpos or the given FEN, then replays the move
// list. A move that matches no legal move rejects the whole command and
// leaves the previous position in place.
func (s *Session) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("position: missing arguments")
	}

	var b *board.Board
	var moveIdx int
	switch args[0] {
	case "startpos":
		b = board.NewBoard()
		moveIdx = 1
	case "fen":
		end := len(args)
		for i, a := range args {
			if a == "moves" {
				end = i
				break
			}
		}
		parsed, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			return err
		}
		b = parsed
		moveIdx = end
	default:
		return fmt.Errorf("position: unknown subcommand %q", args[0])
	}

	history := []uint64{b.Hash()}
	if moveIdx < len(args) && args[moveIdx] == "moves" {
		for _, text := range args[moveIdx+1:] {
			m, err := b.ParseMove(text)
			if err != nil {
				return err
			}
			if ok, u := b.MakeMove(m); !ok {
				b.UnmakeMove(m, u)
				return fmt.Errorf("illegal move %q", text)
			}
			history = append(history, b.Hash())
		}
	}

	s.board = b
	s.history = history
	return nil
}

func (s *Session) handleGo(args []string) {
	var lim engine.Limits
	ms := func(v string) time.Duration {
		n, _ := strconv.Atoi(v)
		return time.Duration(n) * time.Millisecond
	}
	for i := 0; i < len(args); i++ {
		next := func() string {
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}
		switch args[i] {
		case "wtime":
			lim.WhiteTime = ms(next())
		case "btime":
			lim.BlackTime = ms(next())
		case "winc":
			lim.WhiteInc = ms(next())
		case "binc":
			lim.BlackInc = ms(next())
		case "movestogo":
			lim.MovesToGo, _ = strconv.Atoi(next())
		case "depth":
			lim.Depth, _ = strconv.Atoi(next())
		case "nodes":
			lim.Nodes, _ = strconv.ParseUint(next(), 10, 64)
		case "movetime":
			lim.MoveTime = ms(next())
		case "infinite":
			lim.Infinite = true
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		res := s.eng.Search(ctx, s.board, s.history, lim)
		if res.Move.IsNil() {
			s.reply("bestmove (none)")
			return
		}
		s.reply("bestmove %s", res.Move)
	}()
}

func (s *Session) handlePerft(args []string) {
	if len(args) == 0 {
		s.log.Error().Msg("perft: missing depth")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		s.log.Error().Str("depth", args[0]).Msg("perft: bad depth")
		return
	}
	start := time.Now()
	nodes := board.Perft(s.board, depth)
	elapsed := time.Since(start)
	s.reply("info string perft depth %d nodes %d time %d", depth, nodes, elapsed.Milliseconds())
}

var (
	whitePieceColor = color.New(color.FgHiWhite, color.Bold)
	blackPieceColor = color.New(color.FgHiRed, color.Bold)
	emptySquareTint = color.New(color.FgHiBlack)
	frameTint       = color.New(color.FgCyan)
)

// draw renders the position for interactive debugging.
func (s *Session) draw() {
	for rank := 7; rank >= 0; rank-- {
		frameTint.Fprintf(s.out, " %d ", rank+1)
		for file := 0; file < 8; file++ {
			p := s.board.PieceAt(board.SquareOf(file, rank))
			switch {
			case p == board.NoPiece:
				emptySquareTint.Fprint(s.out, " .")
			case p.PieceColor() == board.White:
				whitePieceColor.Fprintf(s.out, " %s", p)
			default:
				blackPieceColor.Fprintf(s.out, " %s", p)
			}
		}
		fmt.Fprintln(s.out)
	}
	frameTint.Fprintln(s.out, "    a b c d e f g h")
	s.reply("fen: %s", s.board.FEN())
	s.reply("hash: %016x", s.board.Hash())
	s.reply("status: %s", s.board.Status(s.history))
}
