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

// PieceType is a set of constants for piece types in chess.
// The order matches the index into the per color piece bitboards
// and allows promotion piece types to be encoded in two move bits.
type PieceType int8

//noinspection GoVarAndConstTypeMayBeOmitted
const (
	Knight   PieceType = 0
	Bishop   PieceType = 1
	Rook     PieceType = 2
	Queen    PieceType = 3
	Pawn     PieceType = 4
	King     PieceType = 5
	PtNone   PieceType = 6
	PtLength PieceType = 7
)

// array of string labels for piece types
var pieceTypeToString = [PtLength]string{"Knight", "Bishop", "Rook", "Queen", "Pawn", "King", "NOPIECE"}

// Str returns a string representation of a piece type
func (pt PieceType) Str() string {
	return pieceTypeToString[pt]
}

// array of char labels for piece types
var pieceTypeToChar = string("NBRQPK-")

// Char returns a single char string representation of a piece type
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// array of fen chars per color and piece type
var pieceTypeToFen = [2]string{"NBRQPK", "nbrqpk"}

// FenChar returns the FEN representation of the piece type for
// the given color (e.g. White Knight = "N", Black Knight = "n")
func (pt PieceType) FenChar(c Color) string {
	return string(pieceTypeToFen[c][pt])
}

// material values per piece type in centi pawns
// https://www.chessprogramming.org/Simplified_Evaluation_Function
var pieceTypeValue = [PtLength]Value{320, 330, 500, 900, 100, 0, 0}

// ValueOf returns the material value of the piece type in centi pawns
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

// IsValid checks if pt is a valid piece type
func (pt PieceType) IsValid() bool {
	return pt >= Knight && pt < PtNone
}

// MakePieceTypeFromFen returns the piece type for a FEN piece letter
// independent of its color. Returns PtNone for unknown letters.
func MakePieceTypeFromFen(c uint8) PieceType {
	switch c {
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'P', 'p':
		return Pawn
	case 'K', 'k':
		return King
	}
	return PtNone
}
