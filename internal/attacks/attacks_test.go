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

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/frankkopp/LindyGo/internal/types"
)

func TestMain(m *testing.M) {
	Initialize()
	m.Run()
}

func TestKingMasks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, KingAttacks(SqA1).PopCount())
	assert.Equal(3, KingAttacks(SqH8).PopCount())
	assert.Equal(5, KingAttacks(SqE1).PopCount())
	assert.Equal(8, KingAttacks(SqE4).PopCount())

	e4 := KingAttacks(SqE4)
	assert.True(e4.Has(SqD3))
	assert.True(e4.Has(SqE3))
	assert.True(e4.Has(SqF3))
	assert.True(e4.Has(SqD4))
	assert.True(e4.Has(SqF4))
	assert.True(e4.Has(SqD5))
	assert.True(e4.Has(SqE5))
	assert.True(e4.Has(SqF5))
	assert.False(e4.Has(SqE4))
}

func TestKnightMasks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, KnightAttacks(SqA1).PopCount())
	assert.Equal(2, KnightAttacks(SqH8).PopCount())
	assert.Equal(8, KnightAttacks(SqE4).PopCount())
	assert.Equal(3, KnightAttacks(SqG1).PopCount())

	e4 := KnightAttacks(SqE4)
	assert.True(e4.Has(SqD6))
	assert.True(e4.Has(SqF6))
	assert.True(e4.Has(SqC5))
	assert.True(e4.Has(SqG5))
	assert.True(e4.Has(SqC3))
	assert.True(e4.Has(SqG3))
	assert.True(e4.Has(SqD2))
	assert.True(e4.Has(SqF2))

	// no wrap around the board edges
	a1 := KnightAttacks(SqA1)
	assert.True(a1.Has(SqB3))
	assert.True(a1.Has(SqC2))
}

func TestPawnMasks(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(SqD5.Bb()|SqF5.Bb(), PawnAttacks(White, SqE4))
	assert.Equal(SqD3.Bb()|SqF3.Bb(), PawnAttacks(Black, SqE4))

	// edge pawns only attack one square
	assert.Equal(SqB3.Bb(), PawnAttacks(White, SqA2))
	assert.Equal(SqG6.Bb(), PawnAttacks(Black, SqH7))

	// bulk shifts match the per square masks
	pawns := SqA2.Bb() | SqE4.Bb() | SqH5.Bb()
	assert.Equal(PawnAttacks(White, SqA2)|PawnAttacks(White, SqE4)|PawnAttacks(White, SqH5),
		WhitePawnCaptures(pawns))
	assert.Equal(PawnAttacks(Black, SqA2)|PawnAttacks(Black, SqE4)|PawnAttacks(Black, SqH5),
		BlackPawnCaptures(pawns))
}

// the magic indexed lookup must equal the ground truth ray cast
// attack set for every square and every subset of its relevance mask
func TestMagicRookLookups(t *testing.T) {
	assert := assert.New(t)

	for sq := SqA1; sq <= SqH8; sq++ {
		relevance := rookRelevanceMasks[sq]
		subset := BbZero
		for {
			assert.Equal(rookAttacksSlow(sq, subset), RookAttacks(sq, subset),
				"rook attacks mismatch on %s with blockers %s", sq.String(), subset.String())
			subset = (subset - relevance) & relevance
			if subset == BbZero {
				break
			}
		}
	}
}

func TestMagicBishopLookups(t *testing.T) {
	assert := assert.New(t)

	for sq := SqA1; sq <= SqH8; sq++ {
		relevance := bishopRelevanceMasks[sq]
		subset := BbZero
		for {
			assert.Equal(bishopAttacksSlow(sq, subset), BishopAttacks(sq, subset),
				"bishop attacks mismatch on %s with blockers %s", sq.String(), subset.String())
			subset = (subset - relevance) & relevance
			if subset == BbZero {
				break
			}
		}
	}
}

// occupancy bits outside the relevance mask must not change the result
func TestMagicIrrelevantBlockers(t *testing.T) {
	assert := assert.New(t)

	// blockers on the board edges beyond the first blocker
	occ := SqE2.Bb() | SqE8.Bb() | SqA4.Bb() | SqH4.Bb()
	assert.Equal(rookAttacksSlow(SqE4, occ), RookAttacks(SqE4, occ))
	// a blocker outside the relevance mask must not change the hash
	assert.Equal(RookAttacks(SqE4, occ), RookAttacks(SqE4, occ|SqA1.Bb()))

	occ = SqB1.Bb() | SqH7.Bb()
	assert.Equal(bishopAttacksSlow(SqD3, occ), BishopAttacks(SqD3, occ))
}

func TestQueenAttacks(t *testing.T) {
	assert := assert.New(t)

	occ := SqE6.Bb() | SqC4.Bb()
	assert.Equal(RookAttacks(SqE4, occ)|BishopAttacks(SqE4, occ), QueenAttacks(SqE4, occ))

	// queen on an empty board from a corner
	assert.Equal(21, QueenAttacks(SqA1, BbZero).PopCount())
	// queen in the center of an empty board
	assert.Equal(27, QueenAttacks(SqD4, BbZero).PopCount())
}

func TestRelevanceMasks(t *testing.T) {
	assert := assert.New(t)

	// corner rook: 6 squares on the file + 6 on the rank
	assert.Equal(12, rookRelevanceMasks[SqA1].PopCount())
	// center rook
	assert.Equal(10, rookRelevanceMasks[SqE4].PopCount())
	// corner bishop: the long diagonal without the edges
	assert.Equal(6, bishopRelevanceMasks[SqA1].PopCount())
	// center bishop
	assert.Equal(9, bishopRelevanceMasks[SqE4].PopCount())
}
