package engine

import (
	"strings"

	"heron-engine/board"
)

// PVLine is the principal variation: the best move sequence found from the
// root to the search horizon. It is a snapshot; the engine never mutates a
// returned line.
type PVLine []board.Move

func (pv PVLine) String() string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// updatePV grafts m onto the child line one ply deeper, the triangular
// PV-table scheme.
func (e *Engine) updatePV(ply int, m board.Move) {
	e.pvTable[ply][0] = m
	copy(e.pvTable[ply][1:], e.pvTable[ply+1][:e.pvLen[ply+1]])
	e.pvLen[ply] = e.pvLen[ply+1] + 1
}

// rootPV copies the completed iteration's line out of the table.
func (e *Engine) rootPV() PVLine {
	pv := make(PVLine, e.pvLen[0])
	copy(pv, e.pvTable[0][:e.pvLen[0]])
	return pv
}
