package yut

// Piece is one of a player's tokens. A piece that has not entered the board
// yet sits "at start": conceptually on BottomRight without occupying it.
type Piece struct {
	AtStart  bool
	Finished bool
	Cell     Cell
}

// Move is a player's intent to spend one roll on one piece, landing it on
// Cell.
type Move struct {
	Roll  int
	Piece int
	Cell  Cell
}

// MoveSequence derives the cells a piece would traverse for a given roll.
// For a positive roll there is a single path: one NextCell step from the
// piece's position, then roll-1 passing steps, cut short when a step crosses
// the finish line. For the back-up roll (-1) the paths hold the one or two
// predecessor cells; a piece still at start cannot back up and gets empty
// paths. The terminal cell of each non-empty path is a legal landing target.
func MoveSequence(p Piece, roll int) (pathA, pathB []Cell, finish bool) {
	if roll == -1 {
		if p.AtStart {
			return nil, nil, false
		}
		backA, backB := PrevCell(p.Cell)
		return []Cell{backA}, []Cell{backB}, false
	}

	prev := p.Cell
	next, finished := NextCell(p.Cell, p.AtStart)
	pathA = append(pathA, next)
	if finished {
		return pathA, nil, true
	}
	for i := 1; i < roll; i++ {
		cell, finished := NextPassingCell(prev, pathA[i-1])
		prev = pathA[i-1]
		pathA = append(pathA, cell)
		if finished {
			return pathA, nil, true
		}
	}
	return pathA, nil, false
}

// LandingCells returns the legal landing targets for a piece and roll, with
// the finish flag of the forward path.
func LandingCells(p Piece, roll int) (targets []Cell, finish bool) {
	pathA, pathB, finish := MoveSequence(p, roll)
	if len(pathA) != 0 {
		targets = append(targets, pathA[len(pathA)-1])
	}
	if len(pathB) != 0 {
		last := pathB[len(pathB)-1]
		if len(targets) == 0 || targets[0] != last {
			targets = append(targets, last)
		}
	}
	return targets, finish
}
