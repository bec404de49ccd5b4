package renderer

import "github.com/dshills/ayg/internal/renderer/core"

// maxMarginRatio limits margins to 1/3 of the viewport dimension so there
// is always usable space in the centre.
const maxMarginRatio = 3

// Viewport tracks which part of the document is visible.
type Viewport struct {
	topLine uint32
	leftCol int
	width   int
	height  int

	marginV int
	marginH int
}

// NewViewport creates a viewport of the given size.
func NewViewport(width, height, marginV, marginH int) *Viewport {
	return &Viewport{width: width, height: height, marginV: marginV, marginH: marginH}
}

// Resize changes the visible area.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() uint32 {
	return v.topLine
}

// LeftColumn returns the first visible display column.
func (v *Viewport) LeftColumn() int {
	return v.leftCol
}

// Reset scrolls back to the top-left corner.
func (v *Viewport) Reset() {
	v.topLine = 0
	v.leftCol = 0
}

// EnsureVisible scrolls so that (line, col) lies inside the margins.
func (v *Viewport) EnsureVisible(line uint32, col int) {
	if v.height <= 0 || v.width <= 0 {
		return
	}
	mv := min(v.marginV, v.height/maxMarginRatio)
	mh := min(v.marginH, v.width/maxMarginRatio)

	top := int(v.topLine)
	switch {
	case int(line) < top+mv:
		top = int(line) - mv
	case int(line) > top+v.height-1-mv:
		top = int(line) - v.height + 1 + mv
	}
	v.topLine = uint32(max(top, 0))

	switch {
	case col < v.leftCol+mh:
		v.leftCol = col - mh
	case col > v.leftCol+v.width-1-mh:
		v.leftCol = col - v.width + 1 + mh
	}
	v.leftCol = max(v.leftCol, 0)
}

// expandLine lays out a line into display cells, expanding tabs. offsets
// holds the byte offset within the line of the rune drawn in each cell;
// continuation cells of wide runes and tab fill carry the same offset.
func expandLine(line string, tabWidth int) (runes []rune, offsets []int) {
	col := 0
	for i, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			for range n {
				runes = append(runes, ' ')
				offsets = append(offsets, i)
			}
			col += n
			continue
		}
		w := core.RuneWidth(r)
		runes = append(runes, r)
		offsets = append(offsets, i)
		for range w - 1 {
			runes = append(runes, 0)
			offsets = append(offsets, i)
		}
		col += w
	}
	return runes, offsets
}

// displayColumn returns the display column of byte offset col in line.
func displayColumn(line string, col int, tabWidth int) int {
	width := 0
	for i, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			width += tabWidth - width%tabWidth
			continue
		}
		width += core.RuneWidth(r)
	}
	return width
}
