// perft counts move-generation leaf nodes for a position, the standard
// correctness and throughput benchmark for the board package.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"heron-engine/board"
)

func main() {
	fen := flag.String("fen", board.StartPositionFEN, "position to count from")
	depth := flag.Int("depth", 5, "leaf depth")
	divide := flag.Bool("divide", false, "print per-root-move counts")
	flag.Parse()

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	start := time.Now()

	if *divide {
		div := board.PerftDivide(b, *depth)
		lines := make([]string, 0, len(div))
		var total uint64
		for m, n := range div {
			lines = append(lines, p.Sprintf("%s: %d", m, n))
			total += n
		}
		sort.Strings(lines)
		for _, l := range lines {
			fmt.Println(l)
		}
		report(p, total, time.Since(start))
		return
	}

	nodes := board.Perft(b, *depth)
	report(p, nodes, time.Since(start))
}

func report(p *message.Printer, nodes uint64, elapsed time.Duration) {
	nps := float64(nodes) / elapsed.Seconds()
	p.Printf("nodes %d  time %v  nps %.0f\n", nodes, elapsed.Round(time.Millisecond), nps)
}
