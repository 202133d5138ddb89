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

// Package uciInterface defines the interface the search uses to
// communicate with the UCI user interface. It is separated into its
// own package to avoid circular imports between the uci and the
// search packages.
package uciInterface

import (
	. "github.com/frankkopp/LindyGo/internal/types"
)

// UciDriver is the interface against which the search reports its
// readiness, iteration results and the final best move.
type UciDriver interface {
	// SendReadyOk sends the uci response "readyok" to the UCI user interface
	SendReadyOk()

	// SendInfoString sends an arbitrary string to the UCI user interface
	SendInfoString(info string)

	// SendIterationEndInfo sends the result of a completed search
	// depth iteration to the UCI user interface
	SendIterationEndInfo(depth int, value Value, pv Move)

	// SendMateInfo sends the mate distance to the UCI user interface
	// when the search found a forced mate
	SendMateInfo(depth int, mateIn int, pv Move)

	// SendResult sends the search result to the UCI user interface
	// after the search has ended or has been stopped
	SendResult(bestMove Move)
}
