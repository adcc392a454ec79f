package yut

import (
	"errors"
	"math/rand"
)

const (
	MaxPieceCount     = 6
	MinPieceCount     = 2
	MaxPlayerCount    = 6
	MinPlayersToStart = 2
)

type State uint8

const (
	StateGameEnded State = iota
	StateGameStarted
	StateBeginTurn
	StateEndTurn
	StateCanRoll
	StateBeginRoll
	StateEndRoll
	StateBeginMove
	StateEndMove
	StateSelectingMove
)

func (s State) String() string {
	switch s {
	case StateGameEnded:
		return "GameEnded"
	case StateGameStarted:
		return "GameStarted"
	case StateBeginTurn:
		return "BeginTurn"
	case StateEndTurn:
		return "EndTurn"
	case StateCanRoll:
		return "CanRoll"
	case StateBeginRoll:
		return "BeginRoll"
	case StateEndRoll:
		return "EndRoll"
	case StateBeginMove:
		return "BeginMove"
	case StateEndMove:
		return "EndMove"
	case StateSelectingMove:
		return "SelectingMove"
	}
	return "Unknown"
}

var (
	ErrIllegalState  = errors.New("ILLEGAL_STATE: action is not legal in the current game state")
	ErrNotTurnPlayer = errors.New("NOT_TURN_PLAYER: action must come from the turn player")
	ErrNotMember     = errors.New("NOT_MEMBER: player is not seated in this game")
	ErrIllegalMove   = errors.New("ILLEGAL_MOVE: move fails legality checks")
	ErrNotReady      = errors.New("NOT_READY: every player must be ready to start")
	ErrTooFewPlayers = errors.New("TOO_FEW_PLAYERS: at least two players are needed to start")
)

// Step tells the caller what follows a completed roll or move.
type Step uint8

const (
	StepRollAgain Step = iota
	StepSelectMove
	StepNextTurn
	StepGameWon
)

// Seat is one player's slot in a game: identity, ready flag and pieces.
// Only Pieces[0:PieceCount] participate in a given game.
type Seat struct {
	PlayerID string
	Name     string
	Ready    bool
	Pieces   [MaxPieceCount]Piece
}

// Game is the per-room game instance. It is not safe for concurrent use;
// the owning room serializes all access through its mailbox.
type Game struct {
	Seats      []Seat
	PieceCount uint8
	State      State
	TurnIdx    int
	Rolls      []int

	acks            map[string]struct{}
	current         Move
	currentFinishes bool
	rng             *rand.Rand
}

type Option func(*Game)

// WithRand replaces the game's random source, letting tests drive
// deterministic rolls and starting players.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

func NewGame(opts ...Option) *Game {
	g := &Game{
		PieceCount: MinPieceCount,
		State:      StateGameEnded,
		acks:       make(map[string]struct{}),
		rng:        rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func homePieces() [MaxPieceCount]Piece {
	var pieces [MaxPieceCount]Piece
	for i := range pieces {
		pieces[i] = Piece{AtStart: true, Cell: BottomRight}
	}
	return pieces
}

// AddSeat appends a player with all pieces at start. Capacity is the room's
// concern, not the game's.
func (g *Game) AddSeat(playerID, name string) {
	g.Seats = append(g.Seats, Seat{
		PlayerID: playerID,
		Name:     name,
		Pieces:   homePieces(),
	})
}

// RemoveSeat swap-removes a player's seat. Returns false if the player is
// not seated.
func (g *Game) RemoveSeat(playerID string) bool {
	idx := g.seatIndex(playerID)
	if idx == -1 {
		return false
	}
	last := len(g.Seats) - 1
	g.Seats[idx] = g.Seats[last]
	g.Seats = g.Seats[:last]
	if g.TurnIdx >= len(g.Seats) {
		g.TurnIdx = 0
	}
	return true
}

func (g *Game) seatIndex(playerID string) int {
	for i := range g.Seats {
		if g.Seats[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// SeatOf returns the seat for a player, or nil.
func (g *Game) SeatOf(playerID string) *Seat {
	idx := g.seatIndex(playerID)
	if idx == -1 {
		return nil
	}
	return &g.Seats[idx]
}

// CurrentPlayer returns the turn player's ID, or "" when no one is seated.
func (g *Game) CurrentPlayer() string {
	if len(g.Seats) == 0 {
		return ""
	}
	return g.Seats[g.TurnIdx].PlayerID
}

// Reset re-homes every piece, clears ready flags, empties the roll pool and
// returns the game to GameEnded. Resetting twice equals resetting once.
func (g *Game) Reset() {
	g.State = StateGameEnded
	g.Rolls = g.Rolls[:0]
	clear(g.acks)
	for i := range g.Seats {
		g.Seats[i].Ready = false
		g.Seats[i].Pieces = homePieces()
	}
}

// SetReady flips a player's ready flag. Returns false if not seated.
func (g *Game) SetReady(playerID string, ready bool) bool {
	seat := g.SeatOf(playerID)
	if seat == nil {
		return false
	}
	seat.Ready = ready
	return true
}

func (g *Game) allReady() bool {
	for i := range g.Seats {
		if !g.Seats[i].Ready {
			return false
		}
	}
	return true
}

// SetPieceCount clamps n to [MinPieceCount, MaxPieceCount] and applies it.
// Legal only between games.
func (g *Game) SetPieceCount(n int) (uint8, error) {
	if g.State != StateGameEnded {
		return 0, ErrIllegalState
	}
	if n > MaxPieceCount {
		n = MaxPieceCount
	}
	if n < MinPieceCount {
		n = MinPieceCount
	}
	g.PieceCount = uint8(n)
	return g.PieceCount, nil
}

// Start begins a fresh game: every seat ready, enough players, previous game
// over. The starting player is chosen uniformly at random and the machine
// rests in CanRoll awaiting their BeginRoll.
func (g *Game) Start() (startingPlayer string, err error) {
	if g.State != StateGameEnded {
		return "", ErrIllegalState
	}
	if len(g.Seats) < MinPlayersToStart {
		return "", ErrTooFewPlayers
	}
	if !g.allReady() {
		return "", ErrNotReady
	}
	g.Reset()
	g.TurnIdx = g.rng.Intn(len(g.Seats))
	g.State = StateCanRoll
	return g.Seats[g.TurnIdx].PlayerID, nil
}

// Roll draws from the weighted stick distribution over {-1..5} and mutates
// the unconsumed-roll pool: 0 clears the pool, -1 with nothing on the board
// and an empty pool is discarded, anything else is appended.
func (g *Game) Roll() (n int, shouldAppend bool) {
	n = g.rollValue()
	shouldAppend = true
	if n == 0 {
		g.Rolls = g.Rolls[:0]
		shouldAppend = false
	}
	if n == -1 && g.allActiveAtStart(g.TurnIdx) && len(g.Rolls) == 0 {
		shouldAppend = false
	}
	if shouldAppend {
		g.Rolls = append(g.Rolls, n)
	}
	return n, shouldAppend
}

// rollValue draws a stick throw. Weights are 10% each for -1, 0, 4 and 5,
// and 20% each for 1, 2 and 3.
func (g *Game) rollValue() int {
	n := g.rng.Intn(100)
	switch {
	case n < 10:
		return -1
	case n < 20:
		return 0
	case n < 40:
		return 1
	case n < 60:
		return 2
	case n < 80:
		return 3
	case n < 90:
		return 4
	default:
		return 5
	}
}

func (g *Game) allActiveAtStart(seatIdx int) bool {
	seat := &g.Seats[seatIdx]
	for i := 0; i < int(g.PieceCount); i++ {
		if !seat.Pieces[i].AtStart {
			return false
		}
	}
	return true
}

// RollResult describes a completed roll and what the room should do next.
type RollResult struct {
	Roll         int
	ShouldAppend bool
	Next         Step
	NextPlayer   string
}

// BeginRoll performs the turn player's roll and advances the machine: a 4 or
// 5 earns another roll, an empty pool ends the turn, otherwise the player
// selects a move.
func (g *Game) BeginRoll(playerID string) (RollResult, error) {
	if g.State != StateCanRoll {
		return RollResult{}, ErrIllegalState
	}
	if g.CurrentPlayer() != playerID {
		return RollResult{}, ErrNotTurnPlayer
	}
	n, shouldAppend := g.Roll()
	res := RollResult{Roll: n, ShouldAppend: shouldAppend}
	switch {
	case n == 4 || n == 5:
		g.State = StateCanRoll
		res.Next = StepRollAgain
		res.NextPlayer = playerID
	case len(g.Rolls) == 0:
		g.TurnIdx = (g.TurnIdx + 1) % len(g.Seats)
		g.State = StateCanRoll
		res.Next = StepNextTurn
		res.NextPlayer = g.Seats[g.TurnIdx].PlayerID
	default:
		g.State = StateSelectingMove
		res.Next = StepSelectMove
		res.NextPlayer = playerID
	}
	return res, nil
}

// BeginMove validates the turn player's chosen move. On success the roll is
// consumed, the move is snapshotted, the ack set is cleared and the machine
// waits in BeginMove for every member's EndMove.
func (g *Game) BeginMove(playerID string, mv Move) (finished bool, err error) {
	if g.State != StateSelectingMove {
		return false, ErrIllegalState
	}
	if g.CurrentPlayer() != playerID {
		return false, ErrNotTurnPlayer
	}
	if mv.Piece < 0 || mv.Piece >= int(g.PieceCount) {
		return false, ErrIllegalMove
	}
	piece := g.Seats[g.TurnIdx].Pieces[mv.Piece]
	if piece.Finished {
		return false, ErrIllegalMove
	}
	rollIdx := -1
	for i, roll := range g.Rolls {
		if roll == mv.Roll {
			rollIdx = i
			break
		}
	}
	if rollIdx == -1 {
		return false, ErrIllegalMove
	}
	targets, finish := LandingCells(piece, mv.Roll)
	legal := false
	for _, target := range targets {
		if target == mv.Cell {
			legal = true
			break
		}
	}
	if !legal {
		return false, ErrIllegalMove
	}

	g.Rolls = append(g.Rolls[:rollIdx], g.Rolls[rollIdx+1:]...)
	clear(g.acks)
	g.current = mv
	g.currentFinishes = finish
	g.State = StateBeginMove
	return finish, nil
}

// MoveResult describes an applied move: the winner if the game ended, whether
// an opponent was stomped, and what the room should drive next.
type MoveResult struct {
	Winner     string
	Stomped    bool
	Next       Step
	NextPlayer string
}

// EndMove records a member's animation-complete ack for the current move.
// The returned result is nil until every seated player has acked; the final
// ack applies the move atomically.
func (g *Game) EndMove(playerID string, mv Move) (*MoveResult, error) {
	if g.State != StateBeginMove {
		return nil, ErrIllegalState
	}
	if g.seatIndex(playerID) == -1 {
		return nil, ErrNotMember
	}
	if mv != g.current {
		return nil, ErrIllegalMove
	}
	g.acks[playerID] = struct{}{}
	if len(g.acks) != len(g.Seats) {
		return nil, nil
	}
	return g.applyMove(), nil
}

func (g *Game) applyMove() *MoveResult {
	seat := &g.Seats[g.TurnIdx]
	moved := seat.Pieces[g.current.Piece]

	if moved.AtStart {
		// A piece entering the board moves alone.
		seat.Pieces[g.current.Piece] = Piece{
			Cell:     g.current.Cell,
			Finished: g.currentFinishes,
		}
	} else {
		// Stacked pieces travel together.
		from := moved.Cell
		for i := 0; i < int(g.PieceCount); i++ {
			p := seat.Pieces[i]
			if p.Finished || p.AtStart {
				continue
			}
			if p.Cell == from {
				p.Cell = g.current.Cell
				p.Finished = g.currentFinishes
				seat.Pieces[i] = p
			}
		}
	}

	stomped := false
	for si := range g.Seats {
		if si == g.TurnIdx {
			continue
		}
		other := &g.Seats[si]
		for i := 0; i < int(g.PieceCount); i++ {
			p := other.Pieces[i]
			if p.Finished || p.AtStart {
				continue
			}
			if p.Cell == g.current.Cell {
				other.Pieces[i] = Piece{AtStart: true, Cell: BottomRight}
				stomped = true
			}
		}
	}

	finishCount := 0
	for i := 0; i < int(g.PieceCount); i++ {
		if seat.Pieces[i].Finished {
			finishCount++
		}
	}

	res := &MoveResult{Stomped: stomped}
	switch {
	case finishCount == int(g.PieceCount):
		g.State = StateGameEnded
		res.Winner = seat.PlayerID
		res.Next = StepGameWon
	case stomped:
		g.State = StateCanRoll
		res.Next = StepRollAgain
		res.NextPlayer = seat.PlayerID
	case len(g.Rolls) == 0:
		g.TurnIdx = (g.TurnIdx + 1) % len(g.Seats)
		g.State = StateCanRoll
		res.Next = StepNextTurn
		res.NextPlayer = g.Seats[g.TurnIdx].PlayerID
	default:
		g.State = StateSelectingMove
		res.Next = StepSelectMove
		res.NextPlayer = seat.PlayerID
	}
	return res
}
