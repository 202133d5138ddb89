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

package position

import (
	"github.com/frankkopp/LindyGo/internal/attacks"
	. "github.com/frankkopp/LindyGo/internal/types"
)

// rayDef describes one of the eight ray directions of the check and
// pin scan as a bit shift with a board edge mask that terminates the
// walk before wrapping around.
type rayDef struct {
	edge  Bitboard
	shift uint
	up    bool
}

var orthogonalRays = [4]rayDef{
	{Rank8_Bb, 8, true},  // up
	{Rank1_Bb, 8, false}, // down
	{FileH_Bb, 1, true},  // right
	{FileA_Bb, 1, false}, // left
}

var diagonalRays = [4]rayDef{
	{Rank8_Bb | FileH_Bb, 9, true},  // up right
	{Rank8_Bb | FileA_Bb, 7, true},  // up left
	{Rank1_Bb | FileH_Bb, 7, false}, // down right
	{Rank1_Bb | FileA_Bb, 9, false}, // down left
}

// UpdateCheckAndPins refreshes the check mask and the two pin masks
// of the position with a single scan from the king of the side to
// move and returns the number of checks (saturated at 2).
// These masks let the move generator produce legal moves directly
// instead of filtering pseudo legal moves with a make/unmake trial -
// which is about 5 times faster.
func (p *Position) UpdateCheckAndPins() int {
	us := p.nextPlayer
	them := us.Flip()

	p.orthPin = BbZero
	p.diagPin = BbZero

	kingBb := p.piecesBb[us][King]
	kingSq := kingBb.Lsb()

	// leaper checks - there can never be both a pawn and a knight
	// check at the same time so the combined mask counts as one
	checkMask := attacks.PawnAttacks(us, kingSq) & p.piecesBb[them][Pawn]
	checkMask |= attacks.KnightAttacks(kingSq) & p.piecesBb[them][Knight]
	checks := 0
	if checkMask != BbZero {
		checks++
	}

	orthSliders := p.piecesBb[them][Rook] | p.piecesBb[them][Queen]
	diagSliders := p.piecesBb[them][Bishop] | p.piecesBb[them][Queen]

	for i := 0; i < 4; i++ {
		p.scanRay(kingBb, &orthogonalRays[i], orthSliders, &p.orthPin, &checkMask, &checks)
	}
	for i := 0; i < 4; i++ {
		p.scanRay(kingBb, &diagonalRays[i], diagSliders, &p.diagPin, &checkMask, &checks)
	}

	if checkMask == BbZero {
		p.checkMask = BbAll
	} else {
		p.checkMask = checkMask
	}
	if checks > 2 {
		checks = 2
	}
	return checks
}

// scanRay walks one ray outward from the king square by square.
// An enemy slider matching the ray with no friendly piece in between
// commits the provisional check ray into the check mask. With exactly
// one friendly piece in between the provisional pin ray is committed
// into the pin mask. Any other piece or a second friendly piece
// terminates the ray.
func (p *Position) scanRay(kingBb Bitboard, ray *rayDef, sliders Bitboard, pin *Bitboard, checkMask *Bitboard, checks *int) {
	friendly := p.occupiedBb[p.nextPlayer]
	enemy := p.occupiedBb[p.nextPlayer.Flip()]

	ptr := kingBb
	friendlyPieces := 0
	provisionalCheck := BbZero
	provisionalPin := BbZero

	for ptr&ray.edge == 0 {
		if ray.up {
			ptr <<= ray.shift
		} else {
			ptr >>= ray.shift
		}
		if friendlyPieces == 0 {
			provisionalCheck |= ptr
		}
		provisionalPin |= ptr

		if ptr&friendly != 0 {
			friendlyPieces++
			if friendlyPieces == 2 {
				return
			}
		} else if ptr&enemy != 0 {
			if ptr&sliders != 0 {
				if friendlyPieces == 0 {
					*checkMask |= provisionalCheck
					*checks++
				} else {
					*pin |= provisionalPin
				}
			}
			return
		}
	}
}

// SeenSquares returns the set of squares attacked by the given color.
// Sliding pieces see through the opponent king so squares behind it
// are not counted as escape squares for the king.
func (p *Position) SeenSquares(c Color) Bitboard {
	them := c.Flip()

	seen := attacks.PawnCaptures(c, p.piecesBb[c][Pawn])
	seen |= attacks.KingAttacks(p.piecesBb[c][King].Lsb())

	knights := p.piecesBb[c][Knight]
	for knights != BbZero {
		seen |= attacks.KnightAttacks(knights.PopLsb())
	}

	blockers := p.occupiedAll ^ p.piecesBb[them][King]

	orthSliders := p.piecesBb[c][Rook] | p.piecesBb[c][Queen]
	for orthSliders != BbZero {
		seen |= attacks.RookAttacks(orthSliders.PopLsb(), blockers)
	}
	diagSliders := p.piecesBb[c][Bishop] | p.piecesBb[c][Queen]
	for diagSliders != BbZero {
		seen |= attacks.BishopAttacks(diagSliders.PopLsb(), blockers)
	}

	return seen
}

// IsAttacked checks if the given square is attacked by any piece
// of the given color on the current board
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if attacks.PawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != BbZero {
		return true
	}
	if attacks.KnightAttacks(sq)&p.piecesBb[by][Knight] != BbZero {
		return true
	}
	if attacks.KingAttacks(sq)&p.piecesBb[by][King] != BbZero {
		return true
	}
	if attacks.RookAttacks(sq, p.occupiedAll)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}
	if attacks.BishopAttacks(sq, p.occupiedAll)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}
	return false
}

// HasCheck returns true if the side to move is in check
func (p *Position) HasCheck() bool {
	return p.IsAttacked(p.KingSquare(p.nextPlayer), p.nextPlayer.Flip())
}
