package yut

// Cell is a position on the Yutnori board. The ordinal values are part of
// the wire protocol and must not be renumbered.
type Cell uint8

const (
	BottomRight Cell = iota
	Right0
	Right1
	Right2
	Right3
	TopRight
	Top0
	Top1
	Top2
	Top3
	TopLeft
	Left0
	Left1
	Left2
	Left3
	BottomLeft
	Bottom0
	Bottom1
	Bottom2
	Bottom3
	MainDiagonal0
	MainDiagonal1
	MainDiagonal2
	MainDiagonal3
	AntiDiagonal0
	AntiDiagonal1
	AntiDiagonal2
	AntiDiagonal3
	Center
)

var cellNames = [...]string{
	"BottomRight",
	"Right0", "Right1", "Right2", "Right3",
	"TopRight",
	"Top0", "Top1", "Top2", "Top3",
	"TopLeft",
	"Left0", "Left1", "Left2", "Left3",
	"BottomLeft",
	"Bottom0", "Bottom1", "Bottom2", "Bottom3",
	"MainDiagonal0", "MainDiagonal1", "MainDiagonal2", "MainDiagonal3",
	"AntiDiagonal0", "AntiDiagonal1", "AntiDiagonal2", "AntiDiagonal3",
	"Center",
}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return "Unknown"
}

// NextCell returns the default forward step from a cell. BottomRight is both
// the start and the finish gateway: stepping from it with atStart=false means
// the piece has crossed the finish line. TopRight and TopLeft enter the
// diagonal shortcuts.
func NextCell(c Cell, atStart bool) (Cell, bool) {
	switch c {
	case BottomRight:
		if atStart {
			return Right0, false
		}
		return BottomRight, true
	case Right0:
		return Right1, false
	case Right1:
		return Right2, false
	case Right2:
		return Right3, false
	case Right3:
		return TopRight, false
	case TopRight:
		return AntiDiagonal0, false
	case Top0:
		return Top1, false
	case Top1:
		return Top2, false
	case Top2:
		return Top3, false
	case Top3:
		return TopLeft, false
	case TopLeft:
		return MainDiagonal0, false
	case Left0:
		return Left1, false
	case Left1:
		return Left2, false
	case Left2:
		return Left3, false
	case Left3:
		return BottomLeft, false
	case BottomLeft:
		return Bottom0, false
	case Bottom0:
		return Bottom1, false
	case Bottom1:
		return Bottom2, false
	case Bottom2:
		return Bottom3, false
	case Bottom3:
		return BottomRight, false
	case MainDiagonal0:
		return MainDiagonal1, false
	case MainDiagonal1:
		return Center, false
	case MainDiagonal2:
		return MainDiagonal3, false
	case MainDiagonal3:
		return BottomRight, false
	case AntiDiagonal0:
		return AntiDiagonal1, false
	case AntiDiagonal1:
		return Center, false
	case AntiDiagonal2:
		return AntiDiagonal3, false
	case AntiDiagonal3:
		return BottomLeft, false
	case Center:
		return MainDiagonal2, false
	}
	return BottomRight, false
}

// NextPassingCell returns the step taken while passing through a cell rather
// than landing on it from the start. It differs from NextCell at BottomRight
// (passing always finishes), at the shortcut corners (passing keeps to the
// outer ring), and at Center, where the continuation depends on which
// diagonal the piece came from.
func NextPassingCell(prev, c Cell) (Cell, bool) {
	switch c {
	case BottomRight:
		return BottomRight, true
	case Right0:
		return Right1, false
	case Right1:
		return Right2, false
	case Right2:
		return Right3, false
	case Right3:
		return TopRight, false
	case TopRight:
		return Top0, false
	case Top0:
		return Top1, false
	case Top1:
		return Top2, false
	case Top2:
		return Top3, false
	case Top3:
		return TopLeft, false
	case TopLeft:
		return Left0, false
	case Left0:
		return Left1, false
	case Left1:
		return Left2, false
	case Left2:
		return Left3, false
	case Left3:
		return BottomLeft, false
	case BottomLeft:
		return Bottom0, false
	case Bottom0:
		return Bottom1, false
	case Bottom1:
		return Bottom2, false
	case Bottom2:
		return Bottom3, false
	case Bottom3:
		return BottomRight, false
	case MainDiagonal0:
		return MainDiagonal1, false
	case MainDiagonal1:
		return Center, false
	case MainDiagonal2:
		return MainDiagonal3, false
	case MainDiagonal3:
		return BottomRight, false
	case AntiDiagonal0:
		return AntiDiagonal1, false
	case AntiDiagonal1:
		return Center, false
	case AntiDiagonal2:
		return AntiDiagonal3, false
	case AntiDiagonal3:
		return BottomLeft, false
	case Center:
		if prev == MainDiagonal1 {
			return MainDiagonal2, false
		}
		if prev == AntiDiagonal1 {
			return AntiDiagonal2, false
		}
	}
	return BottomRight, false
}

// PrevCell returns the one or two predecessors of a cell. Two distinct
// predecessors exist only at BottomRight, BottomLeft and Center, where the
// diagonal shortcuts rejoin the outer ring; every other cell returns the
// same predecessor twice.
func PrevCell(c Cell) (Cell, Cell) {
	switch c {
	case BottomRight:
		return Bottom3, MainDiagonal3
	case Right0:
		return BottomRight, BottomRight
	case Right1:
		return Right0, Right0
	case Right2:
		return Right1, Right1
	case Right3:
		return Right2, Right2
	case TopRight:
		return Right3, Right3
	case Top0:
		return TopRight, TopRight
	case Top1:
		return Top0, Top0
	case Top2:
		return Top1, Top1
	case Top3:
		return Top2, Top2
	case TopLeft:
		return Top3, Top3
	case Left0:
		return TopLeft, TopLeft
	case Left1:
		return Left0, Left0
	case Left2:
		return Left1, Left1
	case Left3:
		return Left2, Left2
	case BottomLeft:
		return Left3, AntiDiagonal3
	case Bottom0:
		return BottomLeft, BottomLeft
	case Bottom1:
		return Bottom0, Bottom0
	case Bottom2:
		return Bottom1, Bottom1
	case Bottom3:
		return Bottom2, Bottom2
	case MainDiagonal0:
		return TopLeft, TopLeft
	case MainDiagonal1:
		return MainDiagonal0, MainDiagonal0
	case MainDiagonal2:
		return Center, Center
	case MainDiagonal3:
		return MainDiagonal2, MainDiagonal2
	case AntiDiagonal0:
		return TopRight, TopRight
	case AntiDiagonal1:
		return AntiDiagonal0, AntiDiagonal0
	case AntiDiagonal2:
		return Center, Center
	case AntiDiagonal3:
		return AntiDiagonal2, AntiDiagonal2
	case Center:
		return MainDiagonal1, AntiDiagonal1
	}
	return BottomRight, BottomRight
}
