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
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	. "github.com/frankkopp/LindyGo/internal/types"
	"github.com/frankkopp/LindyGo/internal/util"
)

var out = message.NewPrinter(language.German)

// Perft is class to test move generation of the chess engine
// by counting the leaf nodes of the move generation tree to a
// given depth and comparing the counts against published results.
type Perft struct {
	Nodes    uint64
	stopFlag bool
}

// NewPerft creates a new empty Perft instance
func NewPerft() *Perft {
	return &Perft{}
}

// Stop can be used when perft has been started in a goroutine
// to stop the currently running perft test
func (pt *Perft) Stop() {
	pt.stopFlag = true
}

// StartPerft counts the leaf nodes of the position to the given
// depth and prints the counts per root move, the total node count,
// the elapsed time and the nodes per second.
// This is the "bench" command of the engine and doubles as the
// correctness oracle for the move generation.
func (pt *Perft) StartPerft(p *position.Position, depth int, verbose bool) {
	pt.stopFlag = false
	pt.Nodes = 0
	if depth < 1 {
		depth = 1
	}

	mg := NewMoveGen()
	ml := moveslice.NewMoveSlice(MaxMoves)

	start := time.Now()

	mg.GenerateLegalMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		if pt.stopFlag {
			out.Println("Perft stopped")
			return
		}
		m := ml.At(i)
		var nodes uint64
		if depth == 1 {
			nodes = 1
		} else {
			next := *p
			next.DoMove(m)
			nodes = pt.perft(&next, depth-1)
		}
		pt.Nodes += nodes
		if verbose {
			_, _ = out.Printf("%s: %d\n", m.StringUci(), nodes)
		}
	}

	elapsed := time.Since(start)
	_, _ = out.Println()
	_, _ = out.Printf("Time Elapsed: %d ms\n", elapsed.Milliseconds())
	_, _ = out.Printf("Total Nodes: %d\n", pt.Nodes)
	_, _ = out.Printf("Nodes/Second: %d\n", util.Nps(pt.Nodes, elapsed))
}

// PerftNodes counts the leaf nodes of the position to the given
// depth without any output. Returns the node count.
func (pt *Perft) PerftNodes(p *position.Position, depth int) uint64 {
	pt.stopFlag = false
	if depth < 1 {
		depth = 1
	}
	pt.Nodes = pt.perft(p, depth)
	return pt.Nodes
}

// perft recursively counts the leaf nodes of the move generation tree.
// At depth 1 the length of the move list is the count - no moves
// need to be made.
func (pt *Perft) perft(p *position.Position, depth int) uint64 {
	ml := moveslice.NewMoveSlice(MaxMoves)
	mg := NewMoveGen()
	mg.GenerateLegalMoves(p, ml)
	if depth == 1 {
		return uint64(ml.Len())
	}
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		if pt.stopFlag {
			return nodes
		}
		next := *p
		next.DoMove(ml.At(i))
		nodes += pt.perft(&next, depth-1)
	}
	return nodes
}
