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

// Package attacks holds the precomputed attack tables of the engine:
// leaper masks for king and knight, pawn capture masks and the magic
// bitboard lookups for the sliding pieces.
// Initialize() must be called once before any query and is not
// thread safe.
package attacks

import (
	. "github.com/frankkopp/LindyGo/internal/types"
)

var initialized = false

// leaper attack tables indexed by square
var (
	kingMasks   [SqLength]Bitboard
	knightMasks [SqLength]Bitboard

	// pawn capture masks indexed by color and square
	pawnMasks [2][SqLength]Bitboard
)

// blocker relevance masks for the magic hash indexed by square
var (
	rookRelevanceMasks   [SqLength]Bitboard
	bishopRelevanceMasks [SqLength]Bitboard
)

// magic multipliers and dense attack lookups indexed by square.
// Rook tables use a 52 bit shift (4096 entries), bishop tables a
// 55 bit shift (512 entries).
const (
	rookMagicShift   = 52
	bishopMagicShift = 55
)

var (
	rookMagics   [SqLength]Bitboard
	bishopMagics [SqLength]Bitboard
	rookLookup   [SqLength][4096]Bitboard
	bishopLookup [SqLength][512]Bitboard
)

// Initialize fills the attack tables and runs the magic number
// search for both sliding piece types. The PRNG seed is fixed so the
// chosen magics are reproducible. Keeps an initialized flag to avoid
// multiple executions.
func Initialize() {
	if initialized {
		return
	}
	for sq := SqA1; sq <= SqH8; sq++ {
		b := sq.Bb()
		kingMasks[sq] = kingMask(b)
		knightMasks[sq] = knightMask(b)
		pawnMasks[White][sq] = WhitePawnCaptures(b)
		pawnMasks[Black][sq] = BlackPawnCaptures(b)
		rookRelevanceMasks[sq] = rookRelevanceMask(sq)
		bishopRelevanceMasks[sq] = bishopRelevanceMask(sq)
	}
	for sq := SqA1; sq <= SqH8; sq++ {
		findMagic(SlidingRook, sq)
		findMagic(SlidingBishop, sq)
	}
	initialized = true
}

// KingAttacks returns the attack bitboard of a king on the given square
func KingAttacks(sq Square) Bitboard {
	return kingMasks[sq]
}

// KnightAttacks returns the attack bitboard of a knight on the given square
func KnightAttacks(sq Square) Bitboard {
	return knightMasks[sq]
}

// PawnAttacks returns the squares attacked by a pawn of the given
// color on the given square
func PawnAttacks(c Color, sq Square) Bitboard {
	return pawnMasks[c][sq]
}

// RookAttacks returns the attack bitboard of a rook on the given
// square with the given board occupation via the magic hash.
// The attack set includes squares occupied by own pieces - callers
// subtract friendly occupancy themselves.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	blockers := occupied & rookRelevanceMasks[sq]
	return rookLookup[sq][(blockers*rookMagics[sq])>>rookMagicShift]
}

// BishopAttacks returns the attack bitboard of a bishop on the given
// square with the given board occupation via the magic hash.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	blockers := occupied & bishopRelevanceMasks[sq]
	return bishopLookup[sq][(blockers*bishopMagics[sq])>>bishopMagicShift]
}

// QueenAttacks returns the attack bitboard of a queen on the given
// square with the given board occupation
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}

// WhitePawnCaptures returns the squares attacked by all white pawns
// of the given bitboard at once
func WhitePawnCaptures(pawns Bitboard) Bitboard {
	return ((pawns & NotFileH_Bb) << 9) | ((pawns & NotFileA_Bb) << 7)
}

// BlackPawnCaptures returns the squares attacked by all black pawns
// of the given bitboard at once
func BlackPawnCaptures(pawns Bitboard) Bitboard {
	return ((pawns & NotFileH_Bb) >> 7) | ((pawns & NotFileA_Bb) >> 9)
}

// PawnCaptures returns the squares attacked by all pawns of the
// given color of the given bitboard at once
func PawnCaptures(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return WhitePawnCaptures(pawns)
	}
	return BlackPawnCaptures(pawns)
}

func kingMask(b Bitboard) Bitboard {
	return (b << 8) | (b >> 8) |
		((b & NotFileH_Bb) << 1) | ((b & NotFileH_Bb) << 9) | ((b & NotFileH_Bb) >> 7) |
		((b & NotFileA_Bb) >> 1) | ((b & NotFileA_Bb) >> 9) | ((b & NotFileA_Bb) << 7)
}

func knightMask(b Bitboard) Bitboard {
	return ((b & NotFileH_Bb) << 17) | ((b & NotFileH_Bb) >> 15) |
		((b & NotFileA_Bb) << 15) | ((b & NotFileA_Bb) >> 17) |
		((b & NotFileGH_Bb) << 10) | ((b & NotFileGH_Bb) >> 6) |
		((b & NotFileAB_Bb) << 6) | ((b & NotFileAB_Bb) >> 10)
}

// rookRelevanceMask returns the bitboard of all squares of potential
// blockers for a rook. Pieces on the board edges can never block.
func rookRelevanceMask(sq Square) Bitboard {
	file := sq.FileOf().Bb() &^ (Rank1_Bb | Rank8_Bb)
	rank := sq.RankOf().Bb() &^ (FileA_Bb | FileH_Bb)
	return (file | rank) &^ sq.Bb()
}

// bishopRelevanceMask returns the bitboard of all squares of potential
// blockers for a bishop. Pieces on the board edges can never block.
func bishopRelevanceMask(sq Square) Bitboard {
	edges := FileA_Bb | FileH_Bb | Rank1_Bb | Rank8_Bb
	return bishopAttacksSlow(sq, BbZero) &^ edges
}

// rookAttacksSlow calculates the rook attack set by casting rays from
// the square until a blocker or the board edge is hit. Only used to
// build and verify the magic lookups - too slow for move generation.
func rookAttacksSlow(sq Square, blockers Bitboard) Bitboard {
	attacks := BbZero
	b := sq.Bb()
	for ptr := b; ptr&Rank8_Bb == 0; { // up
		ptr <<= 8
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&Rank1_Bb == 0; { // down
		ptr >>= 8
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&FileH_Bb == 0; { // right
		ptr <<= 1
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&FileA_Bb == 0; { // left
		ptr >>= 1
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	return attacks
}

// bishopAttacksSlow calculates the bishop attack set by casting rays
// from the square until a blocker or the board edge is hit.
func bishopAttacksSlow(sq Square, blockers Bitboard) Bitboard {
	attacks := BbZero
	b := sq.Bb()
	for ptr := b; ptr&(Rank8_Bb|FileH_Bb) == 0; { // up right
		ptr <<= 9
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&(Rank8_Bb|FileA_Bb) == 0; { // up left
		ptr <<= 7
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&(Rank1_Bb|FileH_Bb) == 0; { // down right
		ptr >>= 7
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	for ptr := b; ptr&(Rank1_Bb|FileA_Bb) == 0; { // down left
		ptr >>= 9
		attacks |= ptr
		if ptr&blockers != 0 {
			break
		}
	}
	return attacks
}
