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

package search

import (
	"sort"

	"github.com/frankkopp/LindyGo/internal/config"
	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
)

// giving promising moves high search priority
// (low key = searched earlier)
const promotionBonus = -100000

// rootSearch starts the actual recursive alpha beta search with the
// root moves for the first ply. The best move of the previous
// iteration is searched first to prime alpha with a good bound
// before the remaining moves are searched with the smaller window.
// Returns the best move alongside its value.
func (s *Search) rootSearch(p *position.Position, depth int, prevBest Move) (Move, Value) {
	ml := moveslice.NewMoveSlice(MaxMoves)
	s.mg.GenerateLegalMoves(p, ml)
	if ml.Len() == 0 {
		if p.Result() == Checkmate {
			return MoveNone, ValueNegInf
		}
		return MoveNone, ValueDraw
	}

	alpha := ValueNegInf
	bestMove := prevBest

	if prevBest != MoveNone {
		next := *p
		next.DoMove(prevBest)
		s.nodesVisited++
		alpha = -s.negamax(&next, depth-1, ValueNegInf, -alpha)
		if s.stopFlag.Load() {
			return bestMove, ValueNA
		}
	}

	s.orderMoves(p, ml)

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		// prevent the previous best move from being searched twice
		if m == prevBest {
			continue
		}
		next := *p
		next.DoMove(m)
		s.nodesVisited++
		value := -s.negamax(&next, depth-1, ValueNegInf, -alpha)
		if s.stopFlag.Load() {
			return bestMove, ValueNA
		}
		if value > alpha || bestMove == MoveNone {
			alpha = value
			bestMove = m
		}
	}
	return bestMove, alpha
}

// negamax is the recursive alpha beta search below the root ply.
// Fail-hard formulation: a value at or above beta causes a cutoff
// returning beta. At depth 0 the quiescence search takes over.
// With no legal moves the node is either a checkmate (worst value
// for the side to move) or a stalemate (draw).
func (s *Search) negamax(p *position.Position, depth int, alpha Value, beta Value) Value {
	// cooperative cancellation - polled at every node entry. The
	// returned sentinel is never used as a score as all callers
	// check the stop flag before consuming values.
	if s.stopFlag.Load() {
		return ValueNA
	}

	if depth == 0 {
		return s.qsearch(p, alpha, beta)
	}

	ml := moveslice.NewMoveSlice(MaxMoves)
	s.mg.GenerateLegalMoves(p, ml)

	if ml.Len() == 0 {
		if p.Result() == Checkmate {
			return ValueNegInf
		}
		return ValueDraw
	}

	s.orderMoves(p, ml)

	for i := 0; i < ml.Len(); i++ {
		next := *p
		next.DoMove(ml.At(i))
		s.nodesVisited++
		value := -s.negamax(&next, depth-1, -beta, -alpha)
		if value >= beta {
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}
	return alpha
}

// qsearch resolves captures past the nominal search horizon to
// dampen the horizon effect. Stands pat on the static evaluation
// and only searches legal captures (including capture promotions
// and en passant) ordered by MVV-LVA.
// https://www.chessprogramming.org/Quiescence_Search
func (s *Search) qsearch(p *position.Position, alpha Value, beta Value) Value {
	if s.stopFlag.Load() {
		return ValueNA
	}

	standPat := s.eval.Evaluate(p)
	if !config.Settings.Search.UseQuiescence {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	ml := moveslice.NewMoveSlice(MaxMoves)
	s.mg.GenerateLegalCaptures(p, ml)
	s.orderCaptures(p, ml)

	for i := 0; i < ml.Len(); i++ {
		next := *p
		next.DoMove(ml.At(i))
		s.nodesVisited++
		value := -s.qsearch(&next, -beta, -alpha)
		if value >= beta {
			return beta
		}
		if value > alpha {
			alpha = value
		}
	}
	return alpha
}

// orderMoves sorts the move list so that promising moves are
// searched first: promotions lead strongly, then captures by
// MVV-LVA, quiet moves last.
func (s *Search) orderMoves(p *position.Position, ml *moveslice.MoveSlice) {
	if !config.Settings.Search.UseOrdering {
		return
	}
	sort.SliceStable(*ml, func(i, j int) bool {
		return promising(p, (*ml)[i]) < promising(p, (*ml)[j])
	})
}

// orderCaptures sorts a capture only move list by MVV-LVA
func (s *Search) orderCaptures(p *position.Position, ml *moveslice.MoveSlice) {
	if !config.Settings.Search.UseOrdering {
		return
	}
	sort.SliceStable(*ml, func(i, j int) bool {
		return mvvLva(p, (*ml)[i]) < mvvLva(p, (*ml)[j])
	})
}

// promising is the move ordering key - lower keys are searched
// earlier
func promising(p *position.Position, m Move) int {
	if m.IsPromotion() {
		return promotionBonus - int(m.PromotionType().ValueOf())
	}
	if m.IsCapture() {
		return mvvLva(p, m)
	}
	return 0
}

// mvvLva is the "most valuable victim - least valuable attacker"
// ordering key for captures. For en passant the target square is
// empty so the victim counts as zero.
// https://www.chessprogramming.org/MVV-LVA
func mvvLva(p *position.Position, m Move) int {
	victim := p.GetPiece(m.To())
	aggressor := p.GetPiece(m.From())
	return int(aggressor.ValueOf()) - 2*int(victim.ValueOf())
}
