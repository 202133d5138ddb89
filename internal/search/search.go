/*
 * LindyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package search implements the search of the chess engine: an
// iterative deepening negamax with alpha beta pruning, move
// ordering and quiescence search. The search runs in its own
// goroutine and is stopped cooperatively via an atomic flag which
// is raised by the stop command or by the deadline timer.
package search

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/frankkopp/LindyGo/internal/attacks"
	"github.com/frankkopp/LindyGo/internal/evaluator"
	myLogging "github.com/frankkopp/LindyGo/internal/logging"
	"github.com/frankkopp/LindyGo/internal/movegen"
	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
	"github.com/frankkopp/LindyGo/internal/uciInterface"
	"github.com/frankkopp/LindyGo/internal/util"
)

// Search represents the data structure for a chess engine search
//  Create new instance with NewSearch()
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	eval *evaluator.Evaluator
	mg   *movegen.Movegen

	// current search state
	stopFlag         *util.Bool
	startTime        time.Time
	nodesVisited     uint64
	hasResult        bool
	lastSearchResult *Result
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewSearch creates a new Search instance. Until a uci handler is
// set with SetUciHandler all output will be sent to the log.
func NewSearch() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		slog:          myLogging.GetSearchLog(),
		uciHandlerPtr: nil,
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		eval:          evaluator.NewEvaluator(),
		mg:            movegen.NewMoveGen(),
		stopFlag:      util.NewBool(false),
	}
}

// SetUciHandler sets the UCI handler to communicate with the
// UCI user interface. If not set output will be sent to the log.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// IsReady initializes the search which on the first call also
// builds the attack tables. When finished this will call the
// uci handler to send "readyok" to the UCI user interface.
// The attack table initialization is not thread safe and has to be
// complete before any search goroutine is spawned - which this
// ordering guarantees.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// StartSearch starts the search on the given position with the
// given search limits in a separate goroutine. Search can be
// stopped with StopSearch(). Search status can be checked with
// IsSearching(). This takes a copy of the position and the limits.
// A second go while a search is running is rejected.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	if s.IsSearching() {
		msg := "cannot start two searches at once - use stop to stop the ongoing search"
		s.sendInfoStringToUci(msg)
		s.log.Warning(msg)
		return
	}
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	// run search in a separate goroutine
	go s.run(&p, &sl)
	// wait until search is running and initialization is done
	// before returning to the caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible.
// The search stops gracefully and a result will be sent to UCI.
// This will wait for the search to be stopped before returning.
func (s *Search) StopSearch() {
	s.stopFlag.Store(true)
	s.WaitWhileSearching()
}

// IsSearching checks if search is running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching checks if search is running and blocks until
// search has stopped.
func (s *Search) WaitWhileSearching() {
	// get and release semaphore. Will block if search is running
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// NodesVisited returns the number of nodes the last search has visited
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// HasResult returns true when the last started search has finished
// and has a result
func (s *Search) HasResult() bool {
	return s.hasResult
}

// LastSearchResult returns a copy of the last search result
func (s *Search) LastSearchResult() Result {
	if s.lastSearchResult == nil {
		return Result{}
	}
	return *s.lastSearchResult
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// initialize builds the attack tables on the first call
func (s *Search) initialize() {
	start := time.Now()
	attacks.Initialize()
	s.log.Debugf("Attack tables initialized in %d ms", time.Since(start).Milliseconds())
}

// run is the main search function which is started in its own
// goroutine by StartSearch. It controls the deadline timer and the
// iterative deepening and reports the result.
func (s *Search) run(p *position.Position, sl *Limits) {
	// check if there is already a search running and if not grab
	// the isRunning semaphore
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	// setup search
	s.stopFlag.Store(false)
	s.hasResult = false
	s.startTime = time.Now()
	s.nodesVisited = 0

	// the deadline timer sleeps for the allotted duration and then
	// raises the stop flag - unless it is told to stand down via
	// the one shot channel when the search finishes early
	var standDown chan struct{}
	if sl.TimeControl {
		standDown = make(chan struct{})
		go s.startTimer(sl.MoveTime, standDown)
	}

	// release the init phase lock to let the caller continue
	s.initSemaphore.Release(1)

	result := s.iterativeDeepening(p)

	// in case the search was finished before the deadline we need
	// to make sure to cancel the planned stop as it may otherwise
	// stop the next search unintentionally
	if standDown != nil {
		close(standDown)
	}

	result.SearchTime = time.Since(s.startTime)
	result.Nodes = s.nodesVisited
	s.lastSearchResult = result
	s.hasResult = true

	s.slog.Debugf("Search finished: %s", result.String())
	s.sendResultToUci(result)
}

// startTimer stops the search after the allotted move time unless
// it receives the stand down signal first
func (s *Search) startTimer(moveTime time.Duration, standDown chan struct{}) {
	s.slog.Debugf("Deadline timer started with %d ms", moveTime.Milliseconds())
	select {
	case <-time.After(moveTime):
		s.slog.Debug("Deadline timer expired - stopping search")
		s.stopFlag.Store(true)
	case <-standDown:
		s.slog.Debug("Deadline timer stood down")
	}
}

// iterativeDeepening searches the position at depth 1, then 2, then
// 3... This is actually faster than searching a specified depth
// directly thanks to alpha beta pruning and always starting a
// search with the best move of the previous depth.
// When a forced mate is found the search finishes immediately as
// the position is solved - it will always find the shortest mate
// for the attacking player and the longest delaying sequence for
// the defending player.
// With a single legal move in the root position the search finishes
// after the first completed iteration.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	bestMove := MoveNone
	bestValue := ValueNA
	lastDepth := 0
	mateIn := 0

	rootMoves := moveslice.NewMoveSlice(MaxMoves)
	s.mg.GenerateLegalMoves(p, rootMoves)

	for depth := 1; depth <= MaxDepth; depth++ {
		move, value := s.rootSearch(p, depth, bestMove)

		if s.stopFlag.Load() {
			// report the best move of the most recently completed
			// iteration - never a partial one
			if bestMove == MoveNone {
				bestMove = move
			}
			break
		}

		if move == MoveNone {
			// no legal move in the root position - nothing to search
			s.log.Warning("Search called on a finished game")
			break
		}

		bestMove = move
		bestValue = value
		lastDepth = depth

		if value == ValueInf || value == ValueNegInf {
			mateIn = depth / 2
			if value == ValueNegInf {
				mateIn = -mateIn
			}
			s.sendMateInfoToUci(depth, mateIn, move)
			break
		}

		s.sendIterationEndInfoToUci(depth, value, move)

		// only one move to play - deeper iterations can not change it
		if rootMoves.Len() == 1 {
			break
		}
	}

	return &Result{
		BestMove:  bestMove,
		BestValue: bestValue,
		MateIn:    mateIn,
		Depth:     lastDepth,
	}
}

// //////////////////////////////////////////////////////
// // UCI output
// //////////////////////////////////////////////////////

func (s *Search) sendInfoStringToUci(msg string) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfoString(msg)
	} else {
		s.log.Infof("uci >> info string %s", msg)
	}
}

func (s *Search) sendIterationEndInfoToUci(depth int, value Value, pv Move) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendIterationEndInfo(depth, value, pv)
	} else {
		s.log.Infof("uci >> info depth %d score cp %s pv %s", depth, value.String(), pv.StringUci())
	}
}

func (s *Search) sendMateInfoToUci(depth int, mateIn int, pv Move) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendMateInfo(depth, mateIn, pv)
	} else {
		s.log.Infof("uci >> info depth %d score mate %d pv %s", depth, mateIn, pv.StringUci())
	}
}

func (s *Search) sendResultToUci(result *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(result.BestMove)
	} else {
		s.log.Infof("uci >> bestmove %s", result.BestMove.StringUci())
	}
}
