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

package types

import (
	"fmt"
	"strings"
)

// Move is a 16 bit unsigned int type for encoding chess moves
// as a primitive data type.
//  BITMAP 16-bit
//  1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//  5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//  --------------------------------
//          1 1 1 1 1 1               to
//  1 1 1 1                           flag
//                      1 1 1 1 1 1   from
// https://www.chessprogramming.org/Encoding_Moves
type Move uint16

// MoveFlag is the 4 bit flag nibble of a move
type MoveFlag uint16

// Move flags. Flag bit 3 (promotion) and flag bit 2 (capture) can be
// tested with the Promotion and Capture masks, the promoted piece
// type is encoded in the low two flag bits (Knight, Bishop, Rook,
// Queen in PieceType order).
const (
	Quiet              MoveFlag = 0
	DoublePawnPush     MoveFlag = 1
	KingCastle         MoveFlag = 2
	QueenCastle        MoveFlag = 3
	Capture            MoveFlag = 4
	EnPassantCapture   MoveFlag = 5
	KnightPromo        MoveFlag = 8
	BishopPromo        MoveFlag = 9
	RookPromo          MoveFlag = 10
	QueenPromo         MoveFlag = 11
	KnightPromoCapture MoveFlag = 12
	BishopPromoCapture MoveFlag = 13
	RookPromoCapture   MoveFlag = 14
	QueenPromoCapture  MoveFlag = 15
	Promotion          MoveFlag = 8 // mask for all promotion flags
)

const (
	// MoveNone empty non valid move
	MoveNone Move = 0

	fromMask  Move = 0b111111
	toMask    Move = 0b111111 << 6
	flagMask  Move = 0b1111 << 12
	flagShift      = 12
	toShift        = 6
)

// CreateMove returns an encoded Move instance
func CreateMove(from Square, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<toShift | Move(flag)<<flagShift
}

// From returns the from-Square of the move
func (m Move) From() Square {
	return Square(m & fromMask)
}

// To returns the to-Square of the move
func (m Move) To() Square {
	return Square((m & toMask) >> toShift)
}

// Flag returns the flag nibble of the move
func (m Move) Flag() MoveFlag {
	return MoveFlag((m & flagMask) >> flagShift)
}

// IsCapture returns true if the capture bit of the flag is set.
// This includes en passant and promotion captures.
func (m Move) IsCapture() bool {
	return m.Flag()&Capture != 0
}

// IsPromotion returns true if the promotion bit of the flag is set
func (m Move) IsPromotion() bool {
	return m.Flag()&Promotion != 0
}

// PromotionType returns the PieceType the pawn promotes to.
// Must be ignored when the move is not a promotion.
func (m Move) PromotionType() PieceType {
	return PieceType(m.Flag() & 3)
}

// IsValid checks if the move has valid squares and is not MoveNone
func (m Move) IsValid() bool {
	return m != MoveNone && m.From().IsValid() && m.To().IsValid()
}

// StringUci returns a string representation of the move in the
// UCI long algebraic protocol format (e.g. e2e4, e7e8q)
func (m Move) StringUci() string {
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.IsPromotion() {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}

// String returns a string representation of a move with details
func (m Move) String() string {
	if m == MoveNone {
		return "Move: { MoveNone }"
	}
	return fmt.Sprintf("Move: { %-5s flag:%d (%d) }", m.StringUci(), m.Flag(), uint16(m))
}
