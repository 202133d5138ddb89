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

package search

import (
	"fmt"
	"time"

	. "github.com/frankkopp/LindyGo/internal/types"
)

// Result stores the result of a search. If the search was stopped
// the result holds the best move of the most recently completed
// iteration - never a partial one.
type Result struct {
	BestMove   Move
	BestValue  Value
	MateIn     int
	Depth      int
	Nodes      uint64
	SearchTime time.Duration
}

func (r *Result) String() string {
	return fmt.Sprintf("best move = %s value = %s mate = %d depth = %d nodes = %d time = %d ms",
		r.BestMove.StringUci(), r.BestValue.String(), r.MateIn, r.Depth, r.Nodes, r.SearchTime.Milliseconds())
}
