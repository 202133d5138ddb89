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

package attacks

import (
	"math/bits"

	. "github.com/frankkopp/LindyGo/internal/types"
)

// Sliding is a set of constants for the two sliding piece families
type Sliding uint8

// Constants for sliding piece families
const (
	SlidingRook   Sliding = 0
	SlidingBishop Sliding = 1
)

// best seed out of >100_000 random seeds
// (73_292 magic candidates for 128 magics)
const wyrandSeed uint64 = 16113163697346267551

// wyrand is a small and fast pseudo random number generator used to
// draw magic number candidates. The seed is fixed so the chosen
// magics are reproducible.
// https://github.com/wangyi-fudan/wyhash
type wyrand struct {
	s uint64
}

func (r *wyrand) next() uint64 {
	r.s += 0xA0761D6478BD642F
	hi, lo := bits.Mul64(r.s, r.s^0xE7037ED1A0B428DB)
	return hi ^ lo
}

// findMagic searches a magic number for the given square and sliding
// piece family and stores the magic and its dense lookup table.
// A magic number must create a perfect hash: every collision has to
// map to an identical attack set. The lookup table for the square is
// filled as a side effect of a successful verification.
func findMagic(piece Sliding, sq Square) {
	var relevance Bitboard
	if piece == SlidingRook {
		relevance = rookRelevanceMasks[sq]
	} else {
		relevance = bishopRelevanceMasks[sq]
	}

	// enumerate all subsets of the relevance mask - all possible
	// blocker configurations for the square - with the Carry-Rippler
	// trick and precompute the true attack set for each of them.
	// https://www.chessprogramming.org/Traversing_Subsets_of_a_Set
	occupancies := make([]Bitboard, 0, 4096)
	references := make([]Bitboard, 0, 4096)
	subset := BbZero
	for {
		occupancies = append(occupancies, subset)
		if piece == SlidingRook {
			references = append(references, rookAttacksSlow(sq, subset))
		} else {
			references = append(references, bishopAttacksSlow(sq, subset))
		}
		subset = (subset - relevance) & relevance
		if subset == BbZero {
			break
		}
	}

	rng := wyrand{s: wyrandSeed}

	// looping through random numbers until a magic number is found.
	// rand & rand & rand to get a low amount of 1s leads to better
	// candidates
	for {
		candidate := Bitboard(rng.next() & rng.next() & rng.next())
		if checkIfMagic(piece, sq, candidate, occupancies, references) {
			return
		}
	}
}

// checkIfMagic verifies a magic number candidate against all blocker
// configurations of the square.
func checkIfMagic(piece Sliding, sq Square, candidate Bitboard, occupancies []Bitboard, references []Bitboard) bool {
	// magic index = (blockers * magic number) >> magic shift
	// https://www.chessprogramming.org/Magic_Bitboards
	if piece == SlidingRook {
		rookLookup[sq] = [4096]Bitboard{}
		for i, occupancy := range occupancies {
			idx := (occupancy * candidate) >> rookMagicShift
			if rookLookup[sq][idx] == BbZero {
				rookLookup[sq][idx] = references[i]
			} else if rookLookup[sq][idx] != references[i] {
				// bad hash collision - this candidate is not magic
				return false
			}
		}
		rookMagics[sq] = candidate
	} else {
		bishopLookup[sq] = [512]Bitboard{}
		for i, occupancy := range occupancies {
			idx := (occupancy * candidate) >> bishopMagicShift
			if bishopLookup[sq][idx] == BbZero {
				bishopLookup[sq][idx] = references[i]
			} else if bishopLookup[sq][idx] != references[i] {
				// bad hash collision - this candidate is not magic
				return false
			}
		}
		bishopMagics[sq] = candidate
	}
	return true
}
