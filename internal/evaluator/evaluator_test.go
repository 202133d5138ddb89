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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/LindyGo/internal/attacks"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
)

func TestMain(m *testing.M) {
	attacks.Initialize()
	m.Run()
}

func TestEvaluateStartPosition(t *testing.T) {
	assert := assert.New(t)

	e := NewEvaluator()
	p := position.NewPosition()

	// the start position is symmetrical - value is 0 for both sides
	assert.Equal(ValueZero, e.Evaluate(p))

	p = position.NewPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.Equal(ValueZero, e.Evaluate(p))
}

func TestEvaluateSideToMovePerspective(t *testing.T) {
	assert := assert.New(t)

	e := NewEvaluator()

	// white is a queen up - good for white, bad for black
	pWhite := position.NewPosition("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	pBlack := position.NewPosition("4k3/8/8/8/8/8/8/Q3K3 b - - 0 1")

	white := e.Evaluate(pWhite)
	black := e.Evaluate(pBlack)

	assert.True(white > ValueZero, "white to move should be positive, got %d", white)
	assert.True(black < ValueZero, "black to move should be negative, got %d", black)
	assert.Equal(white, -black)
}

func TestEvaluateMaterial(t *testing.T) {
	assert := assert.New(t)

	e := NewEvaluator()

	// lone pawn against empty board - material plus square value
	p := position.NewPosition("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	v := e.Evaluate(p)
	assert.True(v >= Value(100), "pawn up should be at least 100, got %d", v)
}

func TestEvaluateMirroredPositions(t *testing.T) {
	assert := assert.New(t)

	e := NewEvaluator()

	// a position and its color flipped mirror evaluate to the same
	// value from the mover's perspective
	p1 := position.NewPosition("4k3/8/8/3N4/8/8/8/4K3 w - - 0 1")
	p2 := position.NewPosition("4k3/8/8/8/3n4/8/8/4K3 b - - 0 1")
	assert.Equal(e.Evaluate(p1), e.Evaluate(p2))
}

func TestEndgameKingTable(t *testing.T) {
	assert := assert.New(t)

	e := NewEvaluator()

	// few pieces on the board - a centralized king is rewarded by
	// the endgame table
	center := position.NewPosition("8/8/8/4k3/8/3K4/8/8 b - - 0 1")
	corner := position.NewPosition("8/8/8/4k3/8/8/8/K7 b - - 0 1")

	centerValue := e.Evaluate(center)
	cornerValue := e.Evaluate(corner)

	// from black's perspective the white corner king is the worse
	// white king placement
	assert.True(cornerValue > centerValue,
		"centralized white king should be better for white: center=%d corner=%d", centerValue, cornerValue)
}
