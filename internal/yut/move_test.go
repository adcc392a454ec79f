package yut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func home() Piece {
	return Piece{AtStart: true, Cell: BottomRight}
}

func TestMoveSequenceFromStart(t *testing.T) {
	assert := assert.New(t)

	pathA, pathB, finish := MoveSequence(home(), 3)
	assert.Equal([]Cell{Right0, Right1, Right2}, pathA)
	assert.Empty(pathB)
	assert.False(finish)

	pathA, _, finish = MoveSequence(home(), 5)
	assert.Equal([]Cell{Right0, Right1, Right2, Right3, TopRight}, pathA)
	assert.False(finish)
}

func TestMoveSequenceEntersShortcutFromCorner(t *testing.T) {
	assert := assert.New(t)

	pathA, _, finish := MoveSequence(Piece{Cell: TopRight}, 2)
	assert.Equal([]Cell{AntiDiagonal0, AntiDiagonal1}, pathA)
	assert.False(finish)
}

func TestMoveSequencePassesCornerOnOuterRing(t *testing.T) {
	assert := assert.New(t)

	// Starting one short of the corner, the corner is passed through and the
	// path keeps to the ring.
	pathA, _, finish := MoveSequence(Piece{Cell: Right3}, 3)
	assert.Equal([]Cell{TopRight, Top0, Top1}, pathA)
	assert.False(finish)
}

func TestMoveSequenceThroughCenter(t *testing.T) {
	assert := assert.New(t)

	// Arriving at Center along the anti-diagonal continues along it.
	pathA, _, finish := MoveSequence(Piece{Cell: AntiDiagonal1}, 3)
	assert.Equal([]Cell{Center, AntiDiagonal2, AntiDiagonal3}, pathA)
	assert.False(finish)

	// A piece sitting on Center leaves along the main diagonal.
	pathA, _, finish = MoveSequence(Piece{Cell: Center}, 2)
	assert.Equal([]Cell{MainDiagonal2, MainDiagonal3}, pathA)
	assert.False(finish)
}

func TestMoveSequenceFinish(t *testing.T) {
	assert := assert.New(t)

	// Landing exactly on BottomRight does not finish.
	pathA, _, finish := MoveSequence(Piece{Cell: Bottom3}, 1)
	assert.Equal([]Cell{BottomRight}, pathA)
	assert.False(finish)

	// Stepping past it does.
	_, _, finish = MoveSequence(Piece{Cell: Bottom3}, 2)
	assert.True(finish)

	// From BottomRight itself any forward roll finishes immediately.
	pathA, _, finish = MoveSequence(Piece{Cell: BottomRight}, 4)
	assert.Equal([]Cell{BottomRight}, pathA)
	assert.True(finish)
}

func TestMoveSequenceBackUp(t *testing.T) {
	assert := assert.New(t)

	// A single-predecessor cell yields the same target on both paths.
	pathA, pathB, finish := MoveSequence(Piece{Cell: Right1}, -1)
	assert.Equal([]Cell{Right0}, pathA)
	assert.Equal([]Cell{Right0}, pathB)
	assert.False(finish)

	// The rejoin cells back up onto either incoming branch.
	pathA, pathB, _ = MoveSequence(Piece{Cell: BottomRight}, -1)
	assert.Equal([]Cell{Bottom3}, pathA)
	assert.Equal([]Cell{MainDiagonal3}, pathB)

	// A piece still at start has nowhere to back up to.
	pathA, pathB, _ = MoveSequence(home(), -1)
	assert.Empty(pathA)
	assert.Empty(pathB)
}

func TestLandingCells(t *testing.T) {
	assert := assert.New(t)

	targets, finish := LandingCells(home(), 3)
	assert.Equal([]Cell{Right2}, targets)
	assert.False(finish)

	// Coinciding back-up targets are reported once.
	targets, _ = LandingCells(Piece{Cell: Right1}, -1)
	assert.Equal([]Cell{Right0}, targets)

	// Distinct back-up targets are both legal.
	targets, _ = LandingCells(Piece{Cell: Center}, -1)
	assert.Equal([]Cell{MainDiagonal1, AntiDiagonal1}, targets)

	targets, finish = LandingCells(Piece{Cell: Bottom3}, 2)
	assert.Equal([]Cell{BottomRight}, targets)
	assert.True(finish)

	targets, _ = LandingCells(home(), -1)
	assert.Empty(targets)
}
