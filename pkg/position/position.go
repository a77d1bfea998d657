package position

import (
	"fmt"
	"math"

	"github.com/optable/derange/pkg/derangement"
)

// Coordinate of a slot on the board
type Coordinate struct {
	Row, Col int
}

// LayoutFunc turns a linear slot index into a board coordinate.
// It is supplied by the renderer; pixel geometry stays there.
type LayoutFunc func(slot int) Coordinate

// Transition is the move of one item between two arrangements
type Transition[T comparable] struct {
	Item      T
	From, To  int
	FromCoord Coordinate
	ToCoord   Coordinate
}

// Stationary reports whether the item did not move.
func (t Transition[T]) Stationary() bool {
	return t.From == t.To
}

// Grid lays slots out row major on a board width columns wide.
func Grid(width int) LayoutFunc {
	if width < 1 {
		width = 1
	}
	return func(slot int) Coordinate {
		return Coordinate{Row: slot / width, Col: slot % width}
	}
}

// SquareGrid is the smallest square Grid holding n slots.
func SquareGrid(n int) LayoutFunc {
	return Grid(int(math.Ceil(math.Sqrt(float64(n)))))
}

// Line puts every slot on row 0.
func Line(slot int) Coordinate {
	return Coordinate{Col: slot}
}

// MapTransitions computes, for every item of original, the slot it
// occupies in original and the slot it occupies in shuffled. The
// result is ordered by the item's slot in original. Items must be
// distinct. A nil layout defaults to Line.
func MapTransitions[T comparable](original, shuffled []T, layout LayoutFunc) ([]Transition[T], error) {
	if err := derangement.Check(original, shuffled); err != nil {
		return nil, err
	}
	if layout == nil {
		layout = Line
	}

	// destination slot of every item, items must be distinct
	// or a single slot could not be told apart
	var to = make(map[T]int, len(shuffled))
	for slot, item := range shuffled {
		if _, dup := to[item]; dup {
			return nil, &derangement.MismatchError{Reason: fmt.Sprintf("item %v appears more than once", item)}
		}
		to[item] = slot
	}

	var transitions = make([]Transition[T], len(original))
	for from, item := range original {
		dst := to[item]
		transitions[from] = Transition[T]{
			Item:      item,
			From:      from,
			To:        dst,
			FromCoord: layout(from),
			ToCoord:   layout(dst),
		}
	}
	return transitions, nil
}
