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

// Package position represents a chess board with pieces and the
// state information needed to generate legal moves and to play them.
// A position is the central data structure for the engine: the move
// generator reads its bitboards, the search recurses on copies of it.
package position

import (
	"strings"

	. "github.com/frankkopp/LindyGo/internal/types"
)

// StartFen is a string with the fen position for a standard chess game
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position
// This struct represents the chess board and its position.
// It uses a 6x2 piece bitboard representation with additional
// bitboards for each color and all occupied squares and a redundant
// mailbox (piece type per square) for O(1) captured piece lookups.
// It also stores the check mask and the two pin masks computed by
// the check and pin analysis which the legal move generation reads.
// Position is a plain value type - the search copies it instead of
// taking moves back (copy-make).
type Position struct {
	// piece bitboards indexed by color and piece type
	piecesBb [2][6]Bitboard

	// union of the six piece bitboards per color
	occupiedBb [2]Bitboard

	// all occupied squares of both colors
	occupiedAll Bitboard

	// piece type per square, PtNone when empty
	board [64]PieceType

	// squares a moving piece (other than the king) may land on and
	// still resolve check. All bits set when not in check, the
	// checker and the squares between checker and king when in
	// single check. Unused when double checked.
	checkMask Bitboard

	// squares from which only orthogonal respectively diagonal moves
	// along the pin ray are legal
	orthPin Bitboard
	diagPin Bitboard

	// the square a pawn would land on via en passant capture -
	// zero or exactly one bit set
	enPassant Bitboard

	castlingRights CastlingRights
	nextPlayer     Color
	halfMoveClock  int
	moveNumber     int
	result         GameResult
}

// NewPosition creates a new position.
// When called with no parameters the position is equal to the start position.
// When a fen string is given the fen will be parsed and the position created
// from it. In case of an invalid fen the start position is used.
func NewPosition(fen ...string) *Position {
	if len(fen) == 0 {
		p, _ := NewPositionFen(StartFen)
		return p
	}
	p, err := NewPositionFen(fen[0])
	if err != nil {
		p, _ = NewPositionFen(StartFen)
	}
	return p
}

// NewPositionFen creates a new position with the given fen string
// as the starting position
func NewPositionFen(fen string) (*Position, error) {
	p := &Position{}
	for sq := range p.board {
		p.board[sq] = PtNone
	}
	if err := p.setupBoard(fen); err != nil {
		return nil, err
	}
	return p, nil
}

// DoMove applies an encoded move to the position in place and
// maintains every derived mask. The given move has to be a legal
// move for the position, this is not checked here.
// The engine does not implement unmake - search recurses on copies.
func (p *Position) DoMove(m Move) {
	from := m.From()
	to := m.To()
	flag := m.Flag()
	fromBb := from.Bb()
	toBb := to.Bb()
	moveBb := fromBb | toBb

	us := p.nextPlayer
	them := us.Flip()

	piece := p.board[from]
	captured := p.board[to]

	resetHalfMoveClock := piece == Pawn

	p.enPassant = BbZero

	// castling right updates for the moving side - each a one time
	// transition to false
	if piece == King {
		if us == White {
			p.castlingRights.Remove(CastlingWhite)
		} else {
			p.castlingRights.Remove(CastlingBlack)
		}
	} else if piece == Rook {
		switch from {
		case SqH1:
			p.castlingRights.Remove(CastlingWhiteOO)
		case SqA1:
			p.castlingRights.Remove(CastlingWhiteOOO)
		case SqH8:
			p.castlingRights.Remove(CastlingBlackOO)
		case SqA8:
			p.castlingRights.Remove(CastlingBlackOOO)
		}
	}

	// move the piece
	p.piecesBb[us][piece] ^= moveBb
	p.occupiedBb[us] ^= moveBb
	p.board[to] = piece
	p.board[from] = PtNone

	if m.IsCapture() {
		resetHalfMoveClock = true
		if flag == EnPassantCapture {
			// the captured pawn lies one rank behind the target
			// square relative to the mover
			var capBb Bitboard
			var capSq Square
			if us == White {
				capBb = toBb >> 8
				capSq = to - 8
			} else {
				capBb = toBb << 8
				capSq = to + 8
			}
			p.piecesBb[them][Pawn] ^= capBb
			p.occupiedBb[them] ^= capBb
			p.board[capSq] = PtNone
		} else {
			p.piecesBb[them][captured] ^= toBb
			p.occupiedBb[them] ^= toBb
			// a capture onto an enemy rook's home corner drops the
			// matching enemy castling right
			switch to {
			case SqH1:
				p.castlingRights.Remove(CastlingWhiteOO)
			case SqA1:
				p.castlingRights.Remove(CastlingWhiteOOO)
			case SqH8:
				p.castlingRights.Remove(CastlingBlackOO)
			case SqA8:
				p.castlingRights.Remove(CastlingBlackOOO)
			}
		}
	}

	switch flag {
	case DoublePawnPush:
		// the skipped square becomes the en passant target
		if us == White {
			p.enPassant = toBb >> 8
		} else {
			p.enPassant = toBb << 8
		}
	case KingCastle:
		if us == White {
			p.moveRook(White, SqH1, SqF1)
		} else {
			p.moveRook(Black, SqH8, SqF8)
		}
	case QueenCastle:
		if us == White {
			p.moveRook(White, SqA1, SqD1)
		} else {
			p.moveRook(Black, SqA8, SqD8)
		}
	default:
		if m.IsPromotion() {
			promoted := m.PromotionType()
			p.piecesBb[us][Pawn] ^= toBb
			p.piecesBb[us][promoted] |= toBb
			p.board[to] = promoted
		}
	}

	// full moves are incremented after black moves
	if us == Black {
		p.moveNumber++
	}
	if resetHalfMoveClock {
		p.halfMoveClock = 0
	} else {
		p.halfMoveClock++
	}

	p.occupiedAll = p.occupiedBb[White] | p.occupiedBb[Black]
	p.nextPlayer = them
}

// moveRook relocates a rook during castling
func (p *Position) moveRook(c Color, from Square, to Square) {
	rookMove := from.Bb() | to.Bb()
	p.piecesBb[c][Rook] ^= rookMove
	p.occupiedBb[c] ^= rookMove
	p.board[from] = PtNone
	p.board[to] = Rook
}

// //////////////////////////////////////////////////////
// // Getters and Setters
// //////////////////////////////////////////////////////

// NextPlayer returns the color of the next player for the position
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece type currently on the given square
func (p *Position) GetPiece(sq Square) PieceType {
	return p.board[sq]
}

// PiecesBb returns the Bitboard for the given piece type of the given color
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a Bitboard of all pieces currently on the board
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedAll
}

// OccupiedBb returns a Bitboard of all pieces of the given color
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// KingSquare returns the square of the king of the given color
func (p *Position) KingSquare(c Color) Square {
	return p.piecesBb[c][King].Lsb()
}

// CheckMask returns the current check mask of the position.
// Only valid after UpdateCheckAndPins has been called.
func (p *Position) CheckMask() Bitboard {
	return p.checkMask
}

// PinsOrthogonal returns the current orthogonal pin mask.
// Only valid after UpdateCheckAndPins has been called.
func (p *Position) PinsOrthogonal() Bitboard {
	return p.orthPin
}

// PinsDiagonal returns the current diagonal pin mask.
// Only valid after UpdateCheckAndPins has been called.
func (p *Position) PinsDiagonal() Bitboard {
	return p.diagPin
}

// GetEnPassant returns the en passant target bitboard - zero or
// exactly one bit set
func (p *Position) GetEnPassant() Bitboard {
	return p.enPassant
}

// CastlingRights returns the castling rights of the position
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// HalfMoveClock returns the number of half moves since the last
// pawn move or capture
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// MoveNumber returns the full move number of the position
func (p *Position) MoveNumber() int {
	return p.moveNumber
}

// Result returns the game result as it was determined by the last
// run of the move generation on this position
func (p *Position) Result() GameResult {
	return p.result
}

// SetResult sets the game result. Called by the move generator when
// the generated move list is empty.
func (p *Position) SetResult(r GameResult) {
	p.result = r
}

// //////////////////////////////////////////////////////
// // String
// //////////////////////////////////////////////////////

// String returns a string representation of the position
// as a board with additional information
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringBoard())
	os.WriteString(p.StringFen())
	return os.String()
}

// StringBoard returns a visual representation of the board as a string
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8 + 1; r > Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			sq := SquareOf(f, r-1)
			pt := p.board[sq]
			if pt == PtNone {
				os.WriteString("|   ")
			} else if p.occupiedBb[White].Has(sq) {
				os.WriteString("| " + pt.FenChar(White) + " ")
			} else {
				os.WriteString("| " + pt.FenChar(Black) + " ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}
