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

// Package evaluator contains structures and functions to calculate
// the value of a chess position to be used in a chess engine search
package evaluator

import (
	"github.com/op/go-logging"

	"github.com/frankkopp/LindyGo/internal/config"
	myLogging "github.com/frankkopp/LindyGo/internal/logging"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
)

// Evaluator represents a data structure and functionality to
// evaluate chess positions with material and positional piece
// values (piece square tables).
//  Create a new instance with NewEvaluator()
type Evaluator struct {
	log *logging.Logger
}

// NewEvaluator creates a new instance of an Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		log: myLogging.GetLog(),
	}
}

// Evaluate returns a static evaluation of the position in centi
// pawns from the perspective of the side to move (positive values
// are good for the mover).
// Sums material and piece square values for both sides. When the
// total piece count on the board falls below the endgame threshold
// the king square value is taken from the endgame king table
// (center biased) instead of the middle game table (corner biased).
func (e *Evaluator) Evaluate(p *position.Position) Value {
	eval := Value(0)

	usePst := config.Settings.Eval.UsePst

	whitePieces := p.OccupiedBb(White)
	for whitePieces != BbZero {
		sq := whitePieces.PopLsb()
		pt := p.GetPiece(sq)
		eval += pt.ValueOf()
		if usePst {
			// the tables are written from white's point of view so
			// the square is mirrored for white pieces
			eval += pieceSquareTables[pt][sq^56]
		}
	}
	blackPieces := p.OccupiedBb(Black)
	for blackPieces != BbZero {
		sq := blackPieces.PopLsb()
		pt := p.GetPiece(sq)
		eval -= pt.ValueOf()
		if usePst {
			eval -= pieceSquareTables[pt][sq]
		}
	}

	// in the endgame the king belongs in the center and not behind
	// its pawn shield - swap the king square values when few pieces
	// are left
	if usePst && config.Settings.Eval.UseEndgameKingPst &&
		p.OccupiedAll().PopCount() < config.Settings.Eval.EndgameMaterialThreshold {
		whiteKing := p.KingSquare(White)
		blackKing := p.KingSquare(Black)
		eval -= pieceSquareTables[King][whiteKing^56]
		eval += pieceSquareTables[King][blackKing]
		eval += kingEndGameTable[whiteKing^56]
		eval -= kingEndGameTable[blackKing]
	}

	// negamax needs the value from the perspective of the side to move
	if p.NextPlayer() == Black {
		return -eval
	}
	return eval
}
