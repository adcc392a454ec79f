package yut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCellFromStart(t *testing.T) {
	assert := assert.New(t)

	next, finished := NextCell(BottomRight, true)
	assert.Equal(Right0, next)
	assert.False(finished)
}

func TestNextCellFinishesAtBottomRight(t *testing.T) {
	assert := assert.New(t)

	// A piece sitting on BottomRight after a full lap finishes on any
	// forward step.
	_, finished := NextCell(BottomRight, false)
	assert.True(finished)

	_, finished = NextPassingCell(Bottom3, BottomRight)
	assert.True(finished)
}

func TestCornersEnterDiagonalsOnlyWhenLandedOn(t *testing.T) {
	assert := assert.New(t)

	// Landing on a top corner turns onto the shortcut.
	next, _ := NextCell(TopRight, false)
	assert.Equal(AntiDiagonal0, next)
	next, _ = NextCell(TopLeft, false)
	assert.Equal(MainDiagonal0, next)

	// Passing through keeps to the outer ring.
	next, _ = NextPassingCell(Right3, TopRight)
	assert.Equal(Top0, next)
	next, _ = NextPassingCell(Top3, TopLeft)
	assert.Equal(Left0, next)
}

func TestCenterContinuation(t *testing.T) {
	assert := assert.New(t)

	// A piece that landed on Center leaves along the main diagonal.
	next, _ := NextCell(Center, false)
	assert.Equal(MainDiagonal2, next)

	// A piece passing through Center stays on the diagonal it arrived on.
	next, _ = NextPassingCell(MainDiagonal1, Center)
	assert.Equal(MainDiagonal2, next)
	next, _ = NextPassingCell(AntiDiagonal1, Center)
	assert.Equal(AntiDiagonal2, next)
}

func TestDiagonalsRejoinTheRing(t *testing.T) {
	assert := assert.New(t)

	next, finished := NextCell(MainDiagonal3, false)
	assert.Equal(BottomRight, next)
	assert.False(finished)

	next, finished = NextCell(AntiDiagonal3, false)
	assert.Equal(BottomLeft, next)
	assert.False(finished)
}

func TestPrevCellForks(t *testing.T) {
	assert := assert.New(t)

	a, b := PrevCell(BottomRight)
	assert.Equal(Bottom3, a)
	assert.Equal(MainDiagonal3, b)

	a, b = PrevCell(BottomLeft)
	assert.Equal(Left3, a)
	assert.Equal(AntiDiagonal3, b)

	a, b = PrevCell(Center)
	assert.Equal(MainDiagonal1, a)
	assert.Equal(AntiDiagonal1, b)

	// Everywhere else both predecessors coincide.
	a, b = PrevCell(Right1)
	assert.Equal(Right0, a)
	assert.Equal(Right0, b)
}

// Every predecessor reported by PrevCell must be able to step forward into
// the cell it precedes.
func TestPrevCellMatchesForwardSteps(t *testing.T) {
	reaches := func(from, to Cell) bool {
		if next, _ := NextCell(from, from == BottomRight); next == to {
			return true
		}
		// Passing continuations differ at corners and at Center.
		for _, prev := range []Cell{MainDiagonal1, AntiDiagonal1, Right3, Top3} {
			if next, _ := NextPassingCell(prev, from); next == to {
				return true
			}
		}
		return false
	}

	for c := BottomRight; c <= Center; c++ {
		a, b := PrevCell(c)
		assert.True(t, reaches(a, c), "%s should step into %s", a, c)
		assert.True(t, reaches(b, c), "%s should step into %s", b, c)
	}
}

func TestCellString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("BottomRight", BottomRight.String())
	assert.Equal("Center", Center.String())
	assert.Equal("AntiDiagonal2", AntiDiagonal2.String())
	assert.Equal("Unknown", Cell(200).String())
}
