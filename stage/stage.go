// Package stage converts a board into the compact run-length string that is
// kept in the store, and back.
//
// Each maximal run of equal cells is written as the cell's letter followed by
// the run length, the length being left out for runs of a single cell. The
// final run is the exception: its digits count the cells after the letter, so
// a board ending in a run of n cells ends with the letter and n-1.
//
//	[a a a a b a a a a] -> "a4ba3"
package stage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/teemleader/gameoflife/board"
)

var (
	// ErrMalformed is returned for text that does not follow the stage grammar.
	ErrMalformed = errors.New("malformed stage")
	// ErrLengthMismatch is returned when the decoded cells do not fill the board exactly.
	ErrLengthMismatch = errors.New("stage does not match board size")
)

// DecodeError records where in the text decoding failed.
type DecodeError struct {
	Offset int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("stage offset %d: %v: %s", e.Offset, e.Err, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// letters maps a cell state to its letter, indexed by state.
const letters = "abcd"

func letterOf(s board.CellState) byte {
	if int(s) < len(letters) {
		return letters[s]
	}
	return letters[board.Reserved]
}

func stateOf(letter byte) (board.CellState, bool) {
	idx := strings.IndexByte(letters, letter)
	if idx < 0 {
		return board.Dead, false
	}
	return board.CellState(idx), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Encode returns the stage string for cells. An empty board gives "".
func Encode(cells []board.CellState) string {
	var sb strings.Builder
	n := len(cells)

	for start := 0; start < n; {
		// Find the end of this run
		end := start + 1
		for end < n && letterOf(cells[end]) == letterOf(cells[start]) {
			end++
		}
		run := end - start

		sb.WriteByte(letterOf(cells[start]))
		if end == n {
			// The letter already covers the first cell of the final run
			if run > 1 {
				sb.WriteString(strconv.Itoa(run - 1))
			}
		} else if run > 1 {
			sb.WriteString(strconv.Itoa(run))
		}
		start = end
	}
	return sb.String()
}

// Decode parses a stage string into a board of width*height cells.
// The text must describe exactly that many cells.
func Decode(text string, width, height int) ([]board.CellState, error) {
	if width < 0 || height < 0 {
		return nil, &DecodeError{Offset: 0, Err: ErrLengthMismatch, Detail: "negative board size"}
	}
	size := width * height
	if width != 0 && size/width != height {
		return nil, &DecodeError{Offset: 0, Err: ErrLengthMismatch, Detail: "board size overflows"}
	}
	cells := make([]board.CellState, size)
	pos := 0

	for i := 0; i < len(text); {
		tokenStart := i
		// Before any letter is seen the current letter is 'a'
		current := board.Dead
		hasLetter := false

		if !isDigit(text[i]) {
			s, ok := stateOf(text[i])
			if !ok {
				return nil, &DecodeError{Offset: i, Err: ErrMalformed, Detail: fmt.Sprintf("unknown cell letter %q", text[i])}
			}
			current = s
			hasLetter = true
			i++
		}

		digitsStart := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}

		count := 1
		if i > digitsStart {
			n, err := strconv.Atoi(text[digitsStart:i])
			if err != nil {
				return nil, &DecodeError{Offset: digitsStart, Err: ErrMalformed, Detail: err.Error()}
			}
			switch {
			case !hasLetter:
				// Leading bare count: a run of dead cells
				count = n
			case i == len(text):
				// Trailing digits continue the final letter to the end of the board
				count = n + 1
			default:
				count = n
			}
			if count < 1 {
				return nil, &DecodeError{Offset: digitsStart, Err: ErrMalformed, Detail: "invalid run length"}
			}
		}

		if count > size-pos {
			return nil, &DecodeError{
				Offset: tokenStart,
				Err:    ErrLengthMismatch,
				Detail: fmt.Sprintf("run of %d overruns board of %d cells at %d", count, size, pos),
			}
		}
		for end := pos + count; pos < end; pos++ {
			cells[pos] = current
		}
	}

	// Older saves leave out a final cell that differs from the one before it.
	// Such text stops one cell short on a letter, the missing cell stays Dead.
	if pos == size-1 && len(text) > 0 && !isDigit(text[len(text)-1]) {
		pos = size
	}

	if pos != size {
		return nil, &DecodeError{
			Offset: len(text),
			Err:    ErrLengthMismatch,
			Detail: fmt.Sprintf("decoded %d cells, board has %d", pos, size),
		}
	}
	return cells, nil
}
