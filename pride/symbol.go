package pride

import "fmt"

// Rect is a rectangle in canvas units.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Symbol is a symbol image together with where to draw it.
//
// Only the Single and MergedLeft rectangles are stored; the merged-right
// rectangle is the horizontal mirror image of MergedLeft.
type Symbol struct {
	Src        string `json:"src"`
	Single     Rect   `json:"single"`
	MergedLeft Rect   `json:"merged_left"`

	// Mirror requests that the image itself be flipped horizontally when
	// drawn in the MergedRight position.
	Mirror bool `json:"mirror,omitempty"`
}

// MergedRight returns MergedLeft mirrored around the vertical centre line of
// a canvas canvasWidth units wide.
func (s Symbol) MergedRight(canvasWidth int) Rect {
	l := s.MergedLeft
	return Rect{
		X:      canvasWidth - l.X - l.Width,
		Y:      l.Y,
		Width:  l.Width,
		Height: l.Height,
	}
}

// Position says which of a symbol's rectangles applies.
type Position int

// The possible positions of a symbol.
const (
	Single      Position = iota // flag drawn on its own
	MergedLeft                  // flag is the left operand of a mix
	MergedRight                 // flag is the right operand of a mix
)

func (p Position) String() string {
	switch p {
	case Single:
		return "single"
	case MergedLeft:
		return "merged-left"
	case MergedRight:
		return "merged-right"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// Placement is a symbol drawn in a particular position.
type Placement struct {
	Symbol   Symbol
	Position Position
}

// Rect returns the rectangle of the placement on a canvas canvasWidth units
// wide.
func (p Placement) Rect(canvasWidth int) Rect {
	switch p.Position {
	case Single:
		return p.Symbol.Single
	case MergedLeft:
		return p.Symbol.MergedLeft
	case MergedRight:
		return p.Symbol.MergedRight(canvasWidth)
	default:
		panic(fmt.Sprintf("pride: invalid position %d", int(p.Position)))
	}
}

// Flipped reports whether the symbol image is drawn mirrored.
func (p Placement) Flipped() bool {
	return p.Position == MergedRight && p.Symbol.Mirror
}
