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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardBasics(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, BbZero.PopCount())
	assert.Equal(64, BbAll.PopCount())
	assert.Equal(1, BbOne.PopCount())
	assert.Equal(8, FileA_Bb.PopCount())
	assert.Equal(8, Rank8_Bb.PopCount())

	assert.Equal(SqA1, BbOne.Lsb())
	assert.Equal(SqH8, SqH8.Bb().Lsb())

	b := SqE4.Bb() | SqA1.Bb()
	assert.True(b.Has(SqE4))
	assert.True(b.Has(SqA1))
	assert.False(b.Has(SqE5))
}

func TestBitboardPopLsb(t *testing.T) {
	assert := assert.New(t)

	b := SqB2.Bb() | SqE4.Bb() | SqH8.Bb()
	assert.Equal(SqB2, b.PopLsb())
	assert.Equal(SqE4, b.PopLsb())
	assert.Equal(SqH8, b.PopLsb())
	assert.Equal(SqNone, b.PopLsb())
	assert.Equal(BbZero, b)
}

func TestBitboardPushPop(t *testing.T) {
	assert := assert.New(t)

	b := BbZero
	b.PushSquare(SqD5)
	assert.True(b.Has(SqD5))
	b.PopSquare(SqD5)
	assert.Equal(BbZero, b)
}

func TestFileRankBb(t *testing.T) {
	assert := assert.New(t)

	assert.True(FileE.Bb().Has(SqE4))
	assert.True(Rank4.Bb().Has(SqE4))
	assert.False(FileE.Bb().Has(SqD4))
	assert.Equal(BbZero, FileA_Bb&FileH_Bb)
	assert.Equal(BbZero, Rank1_Bb&Rank8_Bb)
}
