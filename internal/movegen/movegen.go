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

// Package movegen contains the legal move generation of the engine.
// Moves are generated directly as legal moves using the check mask
// and the two pin masks the position computes in a pre pass - no
// move is ever made just to test it for legality. The only case a
// pure mask based filter cannot express is the discovered rook check
// after an en passant capture which is handled with a targeted rook
// attack recomputation.
package movegen

import (
	"github.com/frankkopp/LindyGo/internal/attacks"
	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
)

// castling masks - the empty mask must be disjoint from all occupied
// squares, the safe mask (the squares the king passes through
// including origin and destination) must be disjoint from the
// squares seen by the opponent
var (
	wOOEmpty  = SqF1.Bb() | SqG1.Bb()
	wOOSafe   = SqE1.Bb() | SqF1.Bb() | SqG1.Bb()
	wOOOEmpty = SqB1.Bb() | SqC1.Bb() | SqD1.Bb()
	wOOOSafe  = SqC1.Bb() | SqD1.Bb() | SqE1.Bb()
	bOOEmpty  = SqF8.Bb() | SqG8.Bb()
	bOOSafe   = SqE8.Bb() | SqF8.Bb() | SqG8.Bb()
	bOOOEmpty = SqB8.Bb() | SqC8.Bb() | SqD8.Bb()
	bOOOSafe  = SqC8.Bb() | SqD8.Bb() | SqE8.Bb()
)

// Movegen generates legal moves for a position into a fixed capacity
// move list. Create a new instance with NewMoveGen().
type Movegen struct {
}

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	return &Movegen{}
}

// GenerateLegalMoves fills the given move list with all legal moves
// of the position. The previous content of the move list is cleared.
// When no legal move exists the result of the position is set to
// Checkmate or Draw (stalemate).
func (mg *Movegen) GenerateLegalMoves(p *position.Position, ml *moveslice.MoveSlice) {
	mg.generate(p, ml, false)
}

// GenerateLegalCaptures fills the given move list with all legal
// capturing moves of the position (including capture promotions and
// en passant). Quiet moves and castling are omitted. Used by the
// quiescence search.
func (mg *Movegen) GenerateLegalCaptures(p *position.Position, ml *moveslice.MoveSlice) {
	mg.generate(p, ml, true)
}

func (mg *Movegen) generate(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	ml.Clear()

	checks := p.UpdateCheckAndPins()

	us := p.NextPlayer()
	them := us.Flip()
	ownOcc := p.OccupiedBb(us)
	enemyOcc := p.OccupiedBb(them)

	// to get legal king moves we must know which squares are seen by
	// the opponent. Calculating this at once is faster compared to
	// looking for attackers for every king target square.
	seenByOpponent := p.SeenSquares(them)

	// if the king is checked twice only king moves can be legal
	if checks < 2 {
		mg.genKnightMoves(p, ml, capturesOnly)
		mg.genSliderMoves(p, ml, capturesOnly)
		mg.genPawnMoves(p, ml, capturesOnly)
	}

	kingSq := p.KingSquare(us)
	kingTargets := attacks.KingAttacks(kingSq) &^ ownOcc &^ seenByOpponent
	addMoves(ml, kingSq, kingTargets&enemyOcc, Capture)
	if !capturesOnly {
		addMoves(ml, kingSq, kingTargets&^enemyOcc, Quiet)
		if checks < 2 {
			mg.genCastlingMoves(p, ml, seenByOpponent)
		}
	}

	if ml.Len() == 0 && !capturesOnly {
		if checks > 0 {
			p.SetResult(Checkmate)
		} else {
			p.SetResult(Draw)
		}
	}
	// a double check with no king move is also mate when only
	// captures were requested
	if ml.Len() == 0 && capturesOnly && checks == 2 && kingTargets == BbZero {
		p.SetResult(Checkmate)
	}
}

// genKnightMoves adds all legal knight moves. Pinned knights can
// never move.
func (mg *Movegen) genKnightMoves(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	ownOcc := p.OccupiedBb(us)
	enemyOcc := p.OccupiedBb(us.Flip())
	checkMask := p.CheckMask()

	knights := p.PiecesBb(us, Knight) &^ (p.PinsOrthogonal() | p.PinsDiagonal())
	for knights != BbZero {
		from := knights.PopLsb()
		targets := attacks.KnightAttacks(from) &^ ownOcc & checkMask
		addMoves(ml, from, targets&enemyOcc, Capture)
		if !capturesOnly {
			addMoves(ml, from, targets&^enemyOcc, Quiet)
		}
	}
}

// genSliderMoves adds all legal rook, bishop and queen moves.
// A queen is handled as the union of a rook and a bishop on the same
// square. A rook type piece on the diagonal pin mask can not move at
// all, on the orthogonal pin mask its targets are intersected with
// the pin ray. Symmetrically for bishop type pieces.
func (mg *Movegen) genSliderMoves(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	ownOcc := p.OccupiedBb(us)
	enemyOcc := p.OccupiedBb(us.Flip())
	allOcc := p.OccupiedAll()
	checkMask := p.CheckMask()
	orthPin := p.PinsOrthogonal()
	diagPin := p.PinsDiagonal()

	rooks := (p.PiecesBb(us, Rook) | p.PiecesBb(us, Queen)) &^ diagPin
	bishops := (p.PiecesBb(us, Bishop) | p.PiecesBb(us, Queen)) &^ orthPin

	pinnedRooks := rooks & orthPin
	for pinnedRooks != BbZero {
		from := pinnedRooks.PopLsb()
		targets := attacks.RookAttacks(from, allOcc) &^ ownOcc & checkMask & orthPin
		addMoves(ml, from, targets&enemyOcc, Capture)
		if !capturesOnly {
			addMoves(ml, from, targets&^enemyOcc, Quiet)
		}
	}
	freeRooks := rooks &^ orthPin
	for freeRooks != BbZero {
		from := freeRooks.PopLsb()
		targets := attacks.RookAttacks(from, allOcc) &^ ownOcc & checkMask
		addMoves(ml, from, targets&enemyOcc, Capture)
		if !capturesOnly {
			addMoves(ml, from, targets&^enemyOcc, Quiet)
		}
	}

	pinnedBishops := bishops & diagPin
	for pinnedBishops != BbZero {
		from := pinnedBishops.PopLsb()
		targets := attacks.BishopAttacks(from, allOcc) &^ ownOcc & checkMask & diagPin
		addMoves(ml, from, targets&enemyOcc, Capture)
		if !capturesOnly {
			addMoves(ml, from, targets&^enemyOcc, Quiet)
		}
	}
	freeBishops := bishops &^ diagPin
	for freeBishops != BbZero {
		from := freeBishops.PopLsb()
		targets := attacks.BishopAttacks(from, allOcc) &^ ownOcc & checkMask
		addMoves(ml, from, targets&enemyOcc, Capture)
		if !capturesOnly {
			addMoves(ml, from, targets&^enemyOcc, Quiet)
		}
	}
}

// genPawnMoves adds all legal pawn moves: single and double pushes,
// diagonal captures, promotions and en passant captures.
// Diagonally pinned pawns can never push, orthogonally pinned pawns
// can never capture.
func (mg *Movegen) genPawnMoves(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	them := us.Flip()
	enemyOcc := p.OccupiedBb(them)
	allOcc := p.OccupiedAll()
	checkMask := p.CheckMask()
	orthPin := p.PinsOrthogonal()
	diagPin := p.PinsDiagonal()

	var promoRank, startRank Bitboard
	if us == White {
		promoRank = Rank8_Bb
		startRank = Rank2_Bb
	} else {
		promoRank = Rank1_Bb
		startRank = Rank7_Bb
	}

	pawns := p.PiecesBb(us, Pawn)
	marchingPawns := pawns &^ diagPin
	capturingPawns := pawns &^ orthPin

	if !capturesOnly {
		// single pushes - an orthogonally pinned pawn may still push
		// along the pin ray
		marchers := marchingPawns
		for marchers != BbZero {
			from := marchers.PopLsb()
			fromBb := from.Bb()
			targets := shiftForward(us, fromBb) &^ allOcc & checkMask
			if fromBb&orthPin != BbZero {
				targets &= orthPin
			}
			addMoves(ml, from, targets&^promoRank, Quiet)
			addPromotions(ml, from, targets&promoRank, false)
		}

		// double pushes - only from the pawn start rank, both the
		// intermediate and the target square must be empty
		doubleMarchers := marchingPawns & startRank
		for doubleMarchers != BbZero {
			from := doubleMarchers.PopLsb()
			fromBb := from.Bb()
			targets := shiftForward(us, shiftForward(us, fromBb)) &^
				(allOcc | shiftForward(us, allOcc)) & checkMask
			if fromBb&orthPin != BbZero {
				targets &= orthPin
			}
			addMoves(ml, from, targets, DoublePawnPush)
		}
	}

	// diagonal captures
	capturers := capturingPawns
	for capturers != BbZero {
		from := capturers.PopLsb()
		fromBb := from.Bb()
		targets := attacks.PawnAttacks(us, from) & enemyOcc & checkMask
		if fromBb&diagPin != BbZero {
			targets &= diagPin
		}
		addMoves(ml, from, targets&^promoRank, Capture)
		addPromotions(ml, from, targets&promoRank, true)
	}

	// en passant - the candidates are found with the enemy capture
	// mask from the en passant target square
	epTarget := p.GetEnPassant()
	if epTarget != BbZero {
		epPawns := capturingPawns & attacks.PawnCaptures(them, epTarget)
		for epPawns != BbZero {
			from := epPawns.PopLsb()
			fromBb := from.Bb()
			// the check mask must be shifted for this particular case
			// to be able to remove a checking pawn with en passant
			targets := attacks.PawnAttacks(us, from) & epTarget & shiftForward(us, checkMask)
			if fromBb&diagPin != BbZero {
				targets &= diagPin
			}
			mg.addEnPassantMove(p, ml, fromBb, targets)
		}
	}
}

// addEnPassantMove adds the en passant capture after checking the
// one edge case the pin masks can not express: en passant removes
// pieces from two squares of the same rank so an orthogonal pin
// through both pawns stays undetected. A rook attack from the own
// king with both pawns removed from the blockers uncovers it.
func (mg *Movegen) addEnPassantMove(p *position.Position, ml *moveslice.MoveSlice, fromBb Bitboard, toBb Bitboard) {
	if toBb == BbZero {
		return
	}
	us := p.NextPlayer()
	them := us.Flip()

	var captureRank Bitboard
	if us == White {
		captureRank = Rank5_Bb
	} else {
		captureRank = Rank4_Bb
	}
	orthSliders := p.PiecesBb(them, Rook) | p.PiecesBb(them, Queen)

	// only check for the edge case if the friendly king and an enemy
	// orthogonal slider exist on the rank of the captured pawn
	if p.PiecesBb(us, King)&captureRank != BbZero && orthSliders&captureRank != BbZero {
		removedPawns := fromBb | shiftBackward(us, toBb)
		kingVision := attacks.RookAttacks(p.KingSquare(us), p.OccupiedAll()^removedPawns) & captureRank
		if kingVision&orthSliders != BbZero {
			// en passant is illegal
			return
		}
	}
	ml.PushBack(CreateMove(fromBb.Lsb(), toBb.Lsb(), EnPassantCapture))
}

// genCastlingMoves adds the castling moves. Castling requires the
// right flag, an empty path between king and rook and a safe path
// for the king (including its origin - a checked king can not
// castle).
func (mg *Movegen) genCastlingMoves(p *position.Position, ml *moveslice.MoveSlice, seenByOpponent Bitboard) {
	allOcc := p.OccupiedAll()
	cr := p.CastlingRights()
	if p.NextPlayer() == White {
		if cr.Has(CastlingWhiteOO) && (wOOSafe&seenByOpponent)|(wOOEmpty&allOcc) == BbZero {
			ml.PushBack(CreateMove(SqE1, SqG1, KingCastle))
		}
		if cr.Has(CastlingWhiteOOO) && (wOOOSafe&seenByOpponent)|(wOOOEmpty&allOcc) == BbZero {
			ml.PushBack(CreateMove(SqE1, SqC1, QueenCastle))
		}
	} else {
		if cr.Has(CastlingBlackOO) && (bOOSafe&seenByOpponent)|(bOOEmpty&allOcc) == BbZero {
			ml.PushBack(CreateMove(SqE8, SqG8, KingCastle))
		}
		if cr.Has(CastlingBlackOOO) && (bOOOSafe&seenByOpponent)|(bOOOEmpty&allOcc) == BbZero {
			ml.PushBack(CreateMove(SqE8, SqC8, QueenCastle))
		}
	}
}

// GetMoveFromUci resolves a move string in UCI long algebraic
// notation (e.g. e2e4, e7e8q) against the legal moves of the given
// position. Returns MoveNone if the string is not a legal move.
func (mg *Movegen) GetMoveFromUci(p *position.Position, movestr string) Move {
	if len(movestr) < 4 || len(movestr) > 5 {
		return MoveNone
	}
	from := MakeSquare(movestr[0:2])
	to := MakeSquare(movestr[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	promo := PtNone
	if len(movestr) == 5 {
		promo = MakePieceTypeFromFen(movestr[4])
		if promo == PtNone {
			return MoveNone
		}
	}

	// the move flags depend on position state - resolve against the
	// generated legal moves
	ml := moveslice.NewMoveSlice(MaxMoves)
	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			if m.PromotionType() == promo {
				return m
			}
			continue
		}
		if promo == PtNone {
			return m
		}
	}
	return MoveNone
}

// addMoves emits a move with the given flag from the from square to
// every square of the target bitboard
func addMoves(ml *moveslice.MoveSlice, from Square, targets Bitboard, flag MoveFlag) {
	for targets != BbZero {
		ml.PushBack(CreateMove(from, targets.PopLsb(), flag))
	}
}

// addPromotions emits the four promotion moves (queen first) for
// every square of the target bitboard
func addPromotions(ml *moveslice.MoveSlice, from Square, targets Bitboard, capture bool) {
	for targets != BbZero {
		to := targets.PopLsb()
		if capture {
			ml.PushBack(CreateMove(from, to, QueenPromoCapture))
			ml.PushBack(CreateMove(from, to, KnightPromoCapture))
			ml.PushBack(CreateMove(from, to, RookPromoCapture))
			ml.PushBack(CreateMove(from, to, BishopPromoCapture))
		} else {
			ml.PushBack(CreateMove(from, to, QueenPromo))
			ml.PushBack(CreateMove(from, to, KnightPromo))
			ml.PushBack(CreateMove(from, to, RookPromo))
			ml.PushBack(CreateMove(from, to, BishopPromo))
		}
	}
}

// shiftForward shifts a bitboard one rank towards the promotion rank
// of the given color
func shiftForward(c Color, b Bitboard) Bitboard {
	if c == White {
		return b << 8
	}
	return b >> 8
}

// shiftBackward shifts a bitboard one rank away from the promotion
// rank of the given color
func shiftBackward(c Color, b Bitboard) Bitboard {
	if c == White {
		return b >> 8
	}
	return b << 8
}
