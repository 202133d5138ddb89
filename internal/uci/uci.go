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

// Package uci contains the UciHandler data structure and functionality to
// handle the UCI protocol communication between the Chess User Interface
// and the chess engine.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/LindyGo/internal/attacks"
	myLogging "github.com/frankkopp/LindyGo/internal/logging"
	"github.com/frankkopp/LindyGo/internal/movegen"
	"github.com/frankkopp/LindyGo/internal/moveslice"
	"github.com/frankkopp/LindyGo/internal/position"
	"github.com/frankkopp/LindyGo/internal/search"
	. "github.com/frankkopp/LindyGo/internal/types"
	"github.com/frankkopp/LindyGo/internal/uciInterface"
	"github.com/frankkopp/LindyGo/internal/version"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

// UciHandler handles all communication with the chess ui via UCI
// and controls the search.
// Create an instance with NewUciHandler()
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging.Logger

	// the engine must be initialized with "isready" before any
	// search or bench can be started
	initialized bool
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUciHandler creates a new UciHandler instance.
// Input / Output io can be replaced by changing the instance's
// InIo and OutIo members.
//  Example:
// 		u.InIo = bufio.NewScanner(os.Stdin)
//		u.OutIo = bufio.NewWriter(os.Stdout)
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(),
		uciLog:     myLogging.GetUciLog(),
	}
	var uciDriver uciInterface.UciDriver = u
	u.mySearch.SetUciHandler(uciDriver)
	return u
}

// Loop starts the main loop to receive commands through
// input stream (pipe or user)
func (u *UciHandler) Loop() {
	u.loop()
}

// Command handles a single line of UCI protocol aka command.
// Returns the uci response as string output.
// Mostly useful for debugging and unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendReadyOk tells the UciDriver to send the uci response "readyok" to the UCI user interface
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary string to the UCI user interface
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends information about the last completed
// search depth iteration to the UCI ui
func (u *UciHandler) SendIterationEndInfo(depth int, value Value, pv Move) {
	u.send(fmt.Sprintf("info depth %d score cp %d pv %s", depth, int(value), pv.StringUci()))
}

// SendMateInfo sends the mate distance to the UCI ui when the
// search found a forced mate
func (u *UciHandler) SendMateInfo(depth int, mateIn int, pv Move) {
	u.send(fmt.Sprintf("info depth %d score mate %d pv %s", depth, mateIn, pv.StringUci()))
}

// SendResult sends the search result to the UCI ui after the search
// has ended or has been stopped
func (u *UciHandler) SendResult(bestMove Move) {
	u.send("bestmove " + bestMove.StringUci())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (u *UciHandler) loop() {
	// infinite loop until "quit" command is received
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			// quit command received
			return
		}
	}
}

var regexWhiteSpace = regexp.MustCompile("\\s+")

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	// find command and execute by calling command function
	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "quit":
		u.stopCommand()
		return true
	case "uci":
		u.uciCommand()
	case "isready":
		u.isReadyCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "bench":
		u.benchCommand(tokens)
	case "board":
		u.boardCommand()
	case "fen":
		u.fenCommand()
	case "state":
		u.stateCommand()
	case "legal":
		if len(tokens) > 1 && tokens[1] == "moves" {
			u.legalMovesCommand()
		} else {
			u.unknownCommand(cmd)
		}
	default:
		u.unknownCommand(cmd)
	}
	return false
}

// command handler when the "uci" cmd has been received.
// Responds with "id" and "uciok"
func (u *UciHandler) uciCommand() {
	u.send("id name LindyGo " + version.Version())
	u.send("id author Frank Kopp, Germany")
	u.send("uciok")
}

// requests the isready status from the Search which in turn
// initializes the attack tables on the first call
func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
	u.initialized = true
}

// sets the current position as given by the uci command and applies
// the given moves in long algebraic notation to it
func (u *UciHandler) positionCommand(tokens []string) {
	// position resolution needs the attack tables
	attacks.Initialize()

	// build initial position
	fen := position.StartFen
	i := 1
	if len(tokens) < 2 {
		u.malformedCommand(tokens)
		return
	}
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
		if len(fen) == 0 {
			u.malformedCommand(tokens)
			return
		}
	default:
		u.malformedCommand(tokens)
		return
	}
	p, err := position.NewPositionFen(fen)
	if err != nil {
		msg := out.Sprintf("Command 'position' malformed fen. %s", err)
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	u.myPosition = p

	// check for moves to make
	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.malformedCommand(tokens)
			return
		}
		i++
		for i < len(tokens) {
			move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
			if !move.IsValid() {
				msg := out.Sprintf("Command 'position' malformed. Invalid move '%s' (%s)", tokens[i], tokens)
				u.SendInfoString(msg)
				log.Warning(msg)
				return
			}
			u.myPosition.DoMove(move)
			i++
		}
	}
	log.Debugf("New position: %s", u.myPosition.StringFen())
}

// starts a search after reading in the search limits provided.
// Supported flags: infinite wtime <value> btime <value>
// winc <value> binc <value>.
// With no flags the search is untimed (as with infinite).
// To start a timed search both wtime and btime must be provided.
func (u *UciHandler) goCommand(tokens []string) {
	if !u.initialized {
		msg := "Engine must be initialized before starting a search with 'isready'"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	sl := search.NewSearchLimits()

	if len(tokens) == 1 {
		sl.Infinite = true
		u.mySearch.StartSearch(*u.myPosition, *sl)
		return
	}

	var wtime, btime, winc, binc int64
	hasWtime := false
	hasBtime := false
	infinite := false

	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			infinite = true
			i++
		case "wtime", "btime", "winc", "binc":
			if i+1 >= len(tokens) {
				u.malformedCommand(tokens)
				return
			}
			value, err := strconv.ParseInt(tokens[i+1], 10, 64)
			if err != nil {
				u.malformedCommand(tokens)
				return
			}
			switch tokens[i] {
			case "wtime":
				wtime = value
				hasWtime = true
			case "btime":
				btime = value
				hasBtime = true
			case "winc":
				winc = value
			case "binc":
				binc = value
			}
			i += 2
		default:
			// unknown flags are skipped
			i++
		}
	}

	switch {
	case infinite:
		sl.Infinite = true
	case hasWtime && hasBtime:
		// time allocation: use a fraction of the remaining time
		// plus the increment
		var moveTimeMs int64
		if u.myPosition.NextPlayer() == White {
			moveTimeMs = (wtime / 50) + winc
		} else {
			moveTimeMs = (btime / 50) + binc
		}
		sl.TimeControl = true
		sl.MoveTime = time.Duration(moveTimeMs) * time.Millisecond
	default:
		msg := "Command 'go' malformed. To start a timed search provide both wtime and btime"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}

	u.mySearch.StartSearch(*u.myPosition, *sl)
}

// sends a stop signal to search and perft
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// starts a perft enumeration on the current position with the given
// depth printing the counts per root move and the speed of the
// move generation
func (u *UciHandler) benchCommand(tokens []string) {
	if !u.initialized {
		msg := "Engine must be initialized before starting a bench with 'isready'"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	depth := 4 // default
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil {
			msg := out.Sprintf("Command 'bench' unexpected format - use bench <depth>")
			u.SendInfoString(msg)
			log.Warning(msg)
			return
		}
		depth = d
	}
	p := *u.myPosition
	u.myPerft.StartPerft(&p, depth, true)
}

// prints a visual representation of the current board
func (u *UciHandler) boardCommand() {
	u.send(u.myPosition.StringBoard())
}

// prints the FEN of the current position
func (u *UciHandler) fenCommand() {
	u.send(u.myPosition.StringFen())
}

// prints the state of the current position
// (ongoing, checkmate or draw)
func (u *UciHandler) stateCommand() {
	if !u.initialized {
		msg := "Engine must be initialized before calculating state with 'isready'"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	// legal moves must be generated to update the result
	ml := moveslice.NewMoveSlice(MaxMoves)
	u.myMoveGen.GenerateLegalMoves(u.myPosition, ml)
	u.send(u.myPosition.Result().Str())
}

// prints all legal moves of the current position
func (u *UciHandler) legalMovesCommand() {
	if !u.initialized {
		msg := "Engine must be initialized before generating moves with 'isready'"
		u.SendInfoString(msg)
		log.Warning(msg)
		return
	}
	ml := moveslice.NewMoveSlice(MaxMoves)
	u.myMoveGen.GenerateLegalMoves(u.myPosition, ml)
	u.send(out.Sprintf("Legal moves: [%d] { %s }", ml.Len(), ml.StringUci()))
}

func (u *UciHandler) unknownCommand(cmd string) {
	msg := out.Sprintf("Error: Unknown command: %s", cmd)
	u.send(msg)
	log.Warning(msg)
}

func (u *UciHandler) malformedCommand(tokens []string) {
	msg := out.Sprintf("Command '%s' malformed. %s", tokens[0], tokens)
	u.SendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) send(s string) {
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
	u.uciLog.Infof(">> %s", s)
}
