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
	"strconv"
)

// Value represents the positional value of a chess position in centi pawns
type Value int32

// Constants for values
const (
	ValueZero Value = 0
	ValueDraw Value = 0

	// ValueInf and ValueNegInf are the alpha beta window bounds and
	// double as the forced mate scores of the search. ValueNegInf is
	// not the smallest int32 so that negating it stays in range.
	ValueInf    Value = 1 << 30
	ValueNegInf Value = -ValueInf

	// ValueNA is the sentinel returned by a cancelled search. It is
	// never compared with a real score - callers check the stop flag
	// before using a returned value.
	ValueNA Value = 0
)

// IsValid checks if value is within the valid range (within the
// alpha beta window bounds)
func (v Value) IsValid() bool {
	return v >= ValueNegInf && v <= ValueInf
}

func (v Value) String() string {
	switch v {
	case ValueInf:
		return "inf"
	case ValueNegInf:
		return "-inf"
	}
	return strconv.Itoa(int(v))
}
