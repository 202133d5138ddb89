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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/LindyGo/internal/attacks"
	. "github.com/frankkopp/LindyGo/internal/types"
)

func TestMain(m *testing.M) {
	attacks.Initialize()
	m.Run()
}

func TestNewPosition(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition()
	assert.Equal(StartFen, p.StringFen())
	assert.Equal(White, p.NextPlayer())
	assert.Equal(CastlingAny, p.CastlingRights())
	assert.Equal(BbZero, p.GetEnPassant())
	assert.Equal(32, p.OccupiedAll().PopCount())
	assert.Equal(Ongoing, p.Result())
}

// FEN -> Position -> FEN must yield the original FEN for every
// canonical FEN of the corpus
func TestFenRoundTrip(t *testing.T) {
	assert := assert.New(t)

	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/R7/R3K3 w - - 0 1",
		"8/8/8/8/8/8/8/K1k5 w - - 99 200",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		assert.NoError(err)
		assert.Equal(fen, p.StringFen())
	}
}

func TestInvalidFen(t *testing.T) {
	assert := assert.New(t)

	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1",
	}
	for _, fen := range invalid {
		_, err := NewPositionFen(fen)
		assert.Error(err, "fen should be invalid: %s", fen)
	}
}

func TestDoMoveNormal(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition()
	p.DoMove(CreateMove(SqE2, SqE4, DoublePawnPush))
	assert.Equal("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", p.StringFen())
	assert.Equal(Black, p.NextPlayer())
	assert.Equal(SqE3.Bb(), p.GetEnPassant())

	p.DoMove(CreateMove(SqD7, SqD5, DoublePawnPush))
	assert.Equal(SqD6.Bb(), p.GetEnPassant())
	assert.Equal(2, p.MoveNumber())

	// the ep target lives exactly one ply
	p.DoMove(CreateMove(SqG1, SqF3, Quiet))
	assert.Equal(BbZero, p.GetEnPassant())
	assert.Equal(1, p.HalfMoveClock())
}

func TestDoMoveCapture(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	p.DoMove(CreateMove(SqE4, SqD5, Capture))
	assert.Equal("rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2", p.StringFen())
	assert.Equal(0, p.HalfMoveClock())
	assert.Equal(15, p.OccupiedBb(Black).PopCount())
	assert.Equal(Pawn, p.GetPiece(SqD5))
	assert.Equal(PtNone, p.GetPiece(SqE4))
}

func TestDoMoveEnPassant(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	p.DoMove(CreateMove(SqE5, SqF6, EnPassantCapture))
	assert.Equal(PtNone, p.GetPiece(SqF5), "the captured pawn lies behind the target square")
	assert.Equal(Pawn, p.GetPiece(SqF6))
	assert.Equal(7, p.PiecesBb(Black, Pawn).PopCount())
	assert.Equal(BbZero, p.GetEnPassant())
	assert.Equal(0, p.HalfMoveClock())
}

func TestDoMoveCastling(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")

	p.DoMove(CreateMove(SqE1, SqG1, KingCastle))
	assert.Equal(King, p.GetPiece(SqG1))
	assert.Equal(Rook, p.GetPiece(SqF1))
	assert.Equal(PtNone, p.GetPiece(SqE1))
	assert.Equal(PtNone, p.GetPiece(SqH1))
	assert.False(p.CastlingRights().Has(CastlingWhite))
	assert.True(p.CastlingRights().Has(CastlingBlack))

	p.DoMove(CreateMove(SqE8, SqC8, QueenCastle))
	assert.Equal(King, p.GetPiece(SqC8))
	assert.Equal(Rook, p.GetPiece(SqD8))
	assert.Equal(PtNone, p.GetPiece(SqA8))
	assert.Equal(CastlingNone, p.CastlingRights())
}

// castling right flags are monotonically non increasing
func TestCastlingRightsUpdates(t *testing.T) {
	assert := assert.New(t)

	// rook move from the home corner drops the matching right
	p := NewPosition("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	p.DoMove(CreateMove(SqA1, SqB1, Quiet))
	assert.False(p.CastlingRights().Has(CastlingWhiteOOO))
	assert.True(p.CastlingRights().Has(CastlingWhiteOO))

	// king move drops both rights of the mover
	p.DoMove(CreateMove(SqE8, SqD8, Quiet))
	assert.False(p.CastlingRights().Has(CastlingBlackOO))
	assert.False(p.CastlingRights().Has(CastlingBlackOOO))

	// capture onto the enemy rook home corner drops the enemy right
	p, _ = NewPositionFen("r3k2r/pppppppp/1N6/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	p.DoMove(CreateMove(SqB6, SqA8, Capture))
	assert.False(p.CastlingRights().Has(CastlingBlackOOO))
	assert.True(p.CastlingRights().Has(CastlingBlackOO))
}

func TestDoMovePromotion(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	p.DoMove(CreateMove(SqD7, SqC8, QueenPromoCapture))
	assert.Equal(Queen, p.GetPiece(SqC8))
	assert.Equal(2, p.PiecesBb(White, Queen).PopCount())
	assert.Equal(5, p.PiecesBb(White, Pawn).PopCount()) // one pawn promoted away
	assert.Equal(0, p.HalfMoveClock())
}

func TestHalfMoveClock(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition("8/8/4k3/8/8/6K1/4P3/7R w - - 10 40")
	// rook move increments the clock
	p.DoMove(CreateMove(SqH1, SqH8, Quiet))
	assert.Equal(11, p.HalfMoveClock())
	// king move increments again
	p.DoMove(CreateMove(SqE6, SqD6, Quiet))
	assert.Equal(12, p.HalfMoveClock())
	// pawn move resets
	p.DoMove(CreateMove(SqE2, SqE4, DoublePawnPush))
	assert.Equal(0, p.HalfMoveClock())
}

func TestCheckAndPinMasks(t *testing.T) {
	assert := assert.New(t)

	// not in check - check mask is all ones
	p := NewPosition()
	checks := p.UpdateCheckAndPins()
	assert.Equal(0, checks)
	assert.Equal(BbAll, p.CheckMask())
	assert.Equal(BbZero, p.PinsOrthogonal())
	assert.Equal(BbZero, p.PinsDiagonal())

	// single sliding check - check mask is the checker plus the
	// squares between checker and king
	p = NewPosition("4k3/8/8/8/4r3/8/8/4K3 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(1, checks)
	assert.Equal(SqE2.Bb()|SqE3.Bb()|SqE4.Bb(), p.CheckMask())

	// knight check - check mask is the checker square only
	p = NewPosition("4k3/8/8/8/8/3n4/8/4K3 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(1, checks)
	assert.Equal(SqD3.Bb(), p.CheckMask())

	// double check
	p = NewPosition("4k3/8/8/8/4r3/3n4/8/4K3 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(2, checks)

	// orthogonal pin on the e file
	p = NewPosition("4k3/8/8/8/4r3/8/4B3/4K3 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(0, checks)
	assert.Equal(BbAll, p.CheckMask())
	assert.Equal(SqE2.Bb()|SqE3.Bb()|SqE4.Bb(), p.PinsOrthogonal())
	assert.Equal(BbZero, p.PinsDiagonal())

	// diagonal pin
	p = NewPosition("4k3/8/8/7b/8/8/4N3/3K4 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(0, checks)
	assert.Equal(SqE2.Bb()|SqF3.Bb()|SqG4.Bb()|SqH5.Bb(), p.PinsDiagonal())

	// two friendly pieces on the ray - no pin
	p = NewPosition("4k3/8/8/8/4r3/4N3/4B3/4K3 w - - 0 1")
	checks = p.UpdateCheckAndPins()
	assert.Equal(0, checks)
	assert.Equal(BbZero, p.PinsOrthogonal())
}

func TestSeenSquares(t *testing.T) {
	assert := assert.New(t)

	// sliders see through the opponent king - the square behind the
	// king is not an escape square
	p := NewPosition("4k3/8/8/8/4r3/8/8/4K3 w - - 0 1")
	seen := p.SeenSquares(Black)
	assert.True(seen.Has(SqE1))
	assert.True(seen.Has(SqE2))
	assert.True(seen.Has(SqE3))

	p = NewPosition("8/8/8/8/r3K3/8/8/4k3 w - - 0 1")
	seen = p.SeenSquares(Black)
	// rook vision passes through the white king on the rank
	assert.True(seen.Has(SqF4))
	assert.True(seen.Has(SqG4))
	assert.True(seen.Has(SqH4))
}

func TestIsAttacked(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition()
	assert.True(p.IsAttacked(SqF3, White))   // by the g2 pawn and g1 knight
	assert.True(p.IsAttacked(SqE2, White))   // by king, queen, knight
	assert.False(p.IsAttacked(SqE4, White))
	assert.False(p.IsAttacked(SqE4, Black))
	assert.True(p.IsAttacked(SqF6, Black))
	assert.False(p.HasCheck())
}

func TestCopyMake(t *testing.T) {
	assert := assert.New(t)

	p := NewPosition()
	clone := *p
	clone.DoMove(CreateMove(SqE2, SqE4, DoublePawnPush))
	// the original position is untouched
	assert.Equal(StartFen, p.StringFen())
	assert.NotEqual(p.StringFen(), clone.StringFen())
}
