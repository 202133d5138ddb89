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

package movegen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/LindyGo/internal/attacks"
	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
)

func TestMain(m *testing.M) {
	attacks.Initialize()
	m.Run()
}

func TestStartposMoves(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)
	p := position.NewPosition()

	mg.GenerateLegalMoves(p, ml)
	assert.Equal(20, ml.Len())
	assert.Equal(Ongoing, p.Result())

	// no captures from the start position
	mg.GenerateLegalCaptures(p, ml)
	assert.Equal(0, ml.Len())
}

func TestKiwipeteMoves(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)
	p := position.NewPosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	mg.GenerateLegalMoves(p, ml)
	assert.Equal(48, ml.Len())

	// both castling moves are legal
	assert.True(ml.Contains(CreateMove(SqE1, SqG1, KingCastle)))
	assert.True(ml.Contains(CreateMove(SqE1, SqC1, QueenCastle)))
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// rook and knight give check at the same time
	p := position.NewPosition("4k3/8/8/8/4r3/3n4/8/4K3 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		assert.Equal(SqE1, ml.At(i).From(), "double check allows only king moves")
	}
	assert.Equal(3, ml.Len()) // d1, d2 and f1 - e2 is seen by the rook, f2 by the knight
}

func TestCheckEvasion(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// a single check can be resolved by capturing the checker,
	// blocking the ray or moving the king
	p := position.NewPosition("4k3/8/8/8/4r3/8/3B4/4KQ2 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		next := *p
		next.DoMove(m)
		assert.False(next.IsAttacked(next.KingSquare(White), Black),
			"%s does not resolve the check", m.StringUci())
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// the classic en passant discovered check: king and enemy rook
	// on the rank of the captured pawn - both pawns disappear and
	// the rook would check the king. The en passant capture must
	// not be generated.
	p := position.NewPosition("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1")
	p.DoMove(CreateMove(SqC7, SqC5, DoublePawnPush))
	mg.GenerateLegalMoves(p, ml)
	assert.False(ml.Contains(CreateMove(SqB5, SqC6, EnPassantCapture)),
		"b5xc6 ep would expose the king on a5 to the rook on h5")

	// without the rook on the rank the same capture is legal
	p = position.NewPosition("8/2p5/3p4/KP6/1R3p1k/8/4P1P1/8 b - - 0 1")
	p.DoMove(CreateMove(SqC7, SqC5, DoublePawnPush))
	mg.GenerateLegalMoves(p, ml)
	assert.True(ml.Contains(CreateMove(SqB5, SqC6, EnPassantCapture)))
}

func TestEnPassantRemovesCheckingPawn(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// the double push gives check - capturing the checking pawn en
	// passant is a legal evasion
	p := position.NewPosition("8/8/8/3k4/5p2/8/4P3/4K3 w - - 0 1")
	p.DoMove(CreateMove(SqE2, SqE4, DoublePawnPush))
	mg.GenerateLegalMoves(p, ml)
	assert.True(ml.Contains(CreateMove(SqF4, SqE3, EnPassantCapture)))
}

func TestPinnedPieces(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// pinned knight can never move
	p := position.NewPosition("4k3/8/8/8/4r3/8/4N3/4K3 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		assert.NotEqual(SqE2, ml.At(i).From(), "pinned knight must not move")
	}

	// orthogonally pinned rook may move along the pin ray
	p = position.NewPosition("4k3/8/8/8/4r3/8/4R3/4K3 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	rookMoves := 0
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).From() == SqE2 {
			rookMoves++
			assert.Equal(FileE, ml.At(i).To().FileOf(), "pinned rook must stay on the pin ray")
		}
	}
	assert.Equal(2, rookMoves) // e3 and e4 (capture)

	// diagonally pinned rook can never move
	p = position.NewPosition("4k3/8/8/7b/8/5R2/8/3K4 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		assert.NotEqual(SqF3, ml.At(i).From(), "diagonally pinned rook must not move")
	}
}

func TestTerminalDetection(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	// back rank mate
	p := position.NewPosition("R3k3/8/4K3/8/8/8/8/8 b - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	assert.Equal(0, ml.Len())
	assert.Equal(Checkmate, p.Result())

	// stalemate
	p = position.NewPosition("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	mg.GenerateLegalMoves(p, ml)
	assert.Equal(0, ml.Len())
	assert.Equal(Draw, p.Result())
}

func TestPromotions(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	p := position.NewPosition("5n2/4P3/8/8/8/8/2k5/4K3 w - - 0 1")
	mg.GenerateLegalMoves(p, ml)

	// four push promotions and four capture promotions
	promos := 0
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).IsPromotion() {
			promos++
		}
	}
	assert.Equal(8, promos)
	assert.True(ml.Contains(CreateMove(SqE7, SqE8, QueenPromo)))
	assert.True(ml.Contains(CreateMove(SqE7, SqF8, KnightPromoCapture)))
}

// for every legal move converting the move to its UCI string and
// resolving that string against the position must yield the
// original move
func TestUciMoveRoundTrip(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		p := position.NewPosition(fen)
		mg.GenerateLegalMoves(p, ml)
		moves := make([]Move, ml.Len())
		copy(moves, *ml)
		for _, m := range moves {
			resolved := mg.GetMoveFromUci(p, m.StringUci())
			assert.Equal(m, resolved, "uci round trip failed for %s on %s", m.StringUci(), fen)
		}
	}
}

func TestGetMoveFromUciInvalid(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	p := position.NewPosition()

	assert.Equal(MoveNone, mg.GetMoveFromUci(p, ""))
	assert.Equal(MoveNone, mg.GetMoveFromUci(p, "e2"))
	assert.Equal(MoveNone, mg.GetMoveFromUci(p, "e2e5"))  // not legal
	assert.Equal(MoveNone, mg.GetMoveFromUci(p, "e7e5"))  // enemy move
	assert.Equal(MoveNone, mg.GetMoveFromUci(p, "e2e4x")) // junk promotion letter
	assert.NotEqual(MoveNone, mg.GetMoveFromUci(p, "e2e4"))
	assert.NotEqual(MoveNone, mg.GetMoveFromUci(p, "g1f3"))
}

// play random legal moves from several start fens and check the
// position invariants after every move
func TestInvariantsRandomPlayouts(t *testing.T) {
	assert := assert.New(t)

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)
	rng := rand.New(rand.NewSource(42))

	fens := []string{
		position.StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}

	for _, fen := range fens {
		for game := 0; game < 20; game++ {
			p := position.NewPosition(fen)
			for ply := 0; ply < 100; ply++ {
				mg.GenerateLegalMoves(p, ml)
				if ml.Len() == 0 {
					break
				}
				p.DoMove(ml.At(rng.Intn(ml.Len())))
				checkInvariants(t, assert, p)
			}
		}
	}
}

// the position invariants that must hold after every legal move
func checkInvariants(t *testing.T, assert *assert.Assertions, p *position.Position) {
	t.Helper()

	// occupancy bitboards agree with the piece bitboards
	var wUnion, bUnion Bitboard
	for pt := Knight; pt <= King; pt++ {
		wUnion |= p.PiecesBb(White, pt)
		bUnion |= p.PiecesBb(Black, pt)
	}
	assert.Equal(wUnion, p.OccupiedBb(White))
	assert.Equal(bUnion, p.OccupiedBb(Black))
	assert.Equal(wUnion|bUnion, p.OccupiedAll())
	assert.Equal(BbZero, p.OccupiedBb(White)&p.OccupiedBb(Black))

	// the mailbox agrees with the bitboards
	for sq := SqA1; sq <= SqH8; sq++ {
		pt := p.GetPiece(sq)
		if pt == PtNone {
			assert.False(p.OccupiedAll().Has(sq))
		} else {
			assert.True(p.PiecesBb(White, pt).Has(sq) || p.PiecesBb(Black, pt).Has(sq))
		}
	}

	// exactly one king per side
	assert.Equal(1, p.PiecesBb(White, King).PopCount())
	assert.Equal(1, p.PiecesBb(Black, King).PopCount())

	// no pawns on rank 1 or rank 8
	pawns := p.PiecesBb(White, Pawn) | p.PiecesBb(Black, Pawn)
	assert.Equal(BbZero, pawns&(Rank1_Bb|Rank8_Bb))

	// the en passant target is empty or lies on rank 3 or rank 6
	if ep := p.GetEnPassant(); ep != BbZero {
		assert.Equal(1, ep.PopCount())
		assert.Equal(BbZero, ep&^(Rank3_Bb|Rank6_Bb))
	}

	// the side not to move is never in check after a legal move
	assert.False(p.IsAttacked(p.KingSquare(p.NextPlayer().Flip()), p.NextPlayer()),
		"side not to move must never be left in check: %s", p.StringFen())
}
