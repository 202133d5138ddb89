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
	"fmt"
	"strconv"
	"strings"

	. "github.com/frankkopp/LindyGo/internal/types"
)

// StringFen returns a string with the FEN of the current position
func (p *Position) StringFen() string {
	var fen strings.Builder

	// pieces
	for r := Rank8 + 1; r > Rank1; r-- {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			sq := SquareOf(f, r-1)
			pt := p.board[sq]
			if pt == PtNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(strconv.Itoa(emptySquares))
				emptySquares = 0
			}
			if p.occupiedBb[White].Has(sq) {
				fen.WriteString(pt.FenChar(White))
			} else {
				fen.WriteString(pt.FenChar(Black))
			}
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r-1 > Rank1 {
			fen.WriteString("/")
		}
	}

	// next player
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.Str())

	// castling rights
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())

	// en passant target square
	fen.WriteString(" ")
	if p.enPassant == BbZero {
		fen.WriteString("-")
	} else {
		fen.WriteString(p.enPassant.Lsb().String())
	}

	// half move clock
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))

	// full move number
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.moveNumber))

	return fen.String()
}

// setupBoard sets up the position from the given fen string.
// FEN parsing is best effort for legal strings only - an invalid fen
// leads to an error, lenient parsing of broken strings is a non goal.
func (p *Position) setupBoard(fen string) error {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return fmt.Errorf("fen must have at least 4 fields: %s", fen)
	}

	// piece placement
	f := FileA
	r := Rank8
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			if r == Rank1 {
				return fmt.Errorf("fen has too many ranks: %s", fen)
			}
			f = FileA
			r--
		case c >= '1' && c <= '8':
			f += File(c - '0')
		default:
			pt := MakePieceTypeFromFen(c)
			if pt == PtNone {
				return fmt.Errorf("fen has invalid piece letter %q: %s", c, fen)
			}
			if !f.IsValid() || !r.IsValid() {
				return fmt.Errorf("fen piece placement out of board: %s", fen)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			sq := SquareOf(f, r)
			p.piecesBb[color][pt].PushSquare(sq)
			p.occupiedBb[color].PushSquare(sq)
			p.board[sq] = pt
			f++
		}
	}
	p.occupiedAll = p.occupiedBb[White] | p.occupiedBb[Black]

	// next player
	switch fields[1] {
	case "w":
		p.nextPlayer = White
	case "b":
		p.nextPlayer = Black
	default:
		return fmt.Errorf("fen has invalid next player field %q: %s", fields[1], fen)
	}

	// castling rights
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castlingRights.Add(CastlingWhiteOO)
			case 'Q':
				p.castlingRights.Add(CastlingWhiteOOO)
			case 'k':
				p.castlingRights.Add(CastlingBlackOO)
			case 'q':
				p.castlingRights.Add(CastlingBlackOOO)
			default:
				return fmt.Errorf("fen has invalid castling field %q: %s", fields[2], fen)
			}
		}
	}

	// en passant target square
	if fields[3] != "-" {
		sq := MakeSquare(fields[3])
		if sq == SqNone {
			return fmt.Errorf("fen has invalid en passant field %q: %s", fields[3], fen)
		}
		p.enPassant = sq.Bb()
	}

	// half move clock (optional)
	p.halfMoveClock = 0
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("fen has invalid half move clock %q: %s", fields[4], fen)
		}
		p.halfMoveClock = n
	}

	// full move number (optional)
	p.moveNumber = 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return fmt.Errorf("fen has invalid move number %q: %s", fields[5], fen)
		}
		if n > 0 {
			p.moveNumber = n
		}
	}

	return nil
}
