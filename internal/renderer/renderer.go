package renderer

import (
	"fmt"

	"github.com/dshills/ayg/internal/engine/buffer"
	"github.com/dshills/ayg/internal/menu"
	"github.com/dshills/ayg/internal/renderer/backend"
	"github.com/dshills/ayg/internal/renderer/core"
)

// Document provides read access to the text being drawn.
type Document interface {
	LineText(line uint32) string
	LineCount() uint32
	LineStartOffset(line uint32) buffer.ByteOffset
}

// Prompt is a one-line input shown on the bottom row.
type Prompt struct {
	Label string
	Input string
}

// Dialog is a message box with a single OK button.
type Dialog struct {
	Title string
	Text  string
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Doc        Document
	TabWidth   int
	Cursor     buffer.Point
	Highlights []buffer.Range // sorted, non-overlapping

	Title    string
	Name     string
	Modified bool
	Pending  int
	Message  string

	Prompt *Prompt
	Dialog *Dialog
	Menu   *menu.Bar
}

// Options configures the renderer.
type Options struct {
	HighlightColor core.Color
	ScrollMarginV  int // Lines to keep above and below the cursor
	ScrollMarginH  int // Columns to keep left and right of the cursor
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		HighlightColor: core.ColorRed,
		ScrollMarginV:  2,
		ScrollMarginH:  8,
	}
}

// Renderer draws frames onto a backend.
type Renderer struct {
	backend  backend.Backend
	theme    Theme
	viewport *Viewport
	width    int
	height   int
	title    string
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	r := &Renderer{
		backend:  b,
		theme:    DefaultTheme(opts.HighlightColor),
		viewport: NewViewport(0, 0, opts.ScrollMarginV, opts.ScrollMarginH),
	}
	r.Resize(width, height)
	return r
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Viewport returns the text area viewport.
func (r *Renderer) Viewport() *Viewport {
	return r.viewport
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	area := r.TextArea()
	r.viewport.Resize(area.Width(), area.Height())
}

// TextArea returns the rectangle the document is drawn in.
func (r *Renderer) TextArea() core.ScreenRect {
	return core.ScreenRect{Top: 1, Left: 0, Bottom: max(r.height-2, 1), Right: r.width}
}

// Render draws a complete frame and shows it.
func (r *Renderer) Render(f Frame) {
	if f.TabWidth <= 0 {
		f.TabWidth = 4
	}
	if f.Title != r.title {
		r.backend.SetTitle(f.Title)
		r.title = f.Title
	}

	r.backend.Clear()
	r.drawText(f)
	r.drawStatus(f)
	r.drawBottomLine(f)
	r.drawMenuBar(f.Menu)

	switch {
	case f.Dialog != nil:
		r.drawDialog(*f.Dialog)
		r.backend.HideCursor()
	case f.Menu != nil && f.Menu.IsOpen():
		r.backend.HideCursor()
	case f.Prompt != nil:
		x := core.StringWidth(f.Prompt.Label) + core.StringWidth(f.Prompt.Input)
		r.backend.ShowCursor(min(x, r.width-1), r.height-1)
	default:
		r.placeCursor(f)
	}
	r.backend.Show()
}

func (r *Renderer) drawText(f Frame) {
	area := r.TextArea()
	if f.Doc == nil || area.Height() <= 0 {
		return
	}

	cursorLine := f.Doc.LineText(f.Cursor.Line)
	r.viewport.EnsureVisible(f.Cursor.Line, displayColumn(cursorLine, int(f.Cursor.Column), f.TabWidth))

	top := r.viewport.TopLine()
	left := r.viewport.LeftColumn()
	count := f.Doc.LineCount()

	for row := 0; row < area.Height(); row++ {
		line := top + uint32(row)
		if line >= count {
			break
		}
		text := f.Doc.LineText(line)
		start := f.Doc.LineStartOffset(line)
		marks := lineMarks(f.Highlights, start, start+buffer.ByteOffset(len(text)))

		runes, offsets := expandLine(text, f.TabWidth)
		y := area.Top + row
		for col := left; col < len(runes) && col-left < area.Width(); col++ {
			ru := runes[col]
			if ru == 0 {
				continue
			}
			style := r.theme.Text
			if marks.contains(offsets[col]) {
				style = style.Merge(r.theme.Misspelled)
			}
			r.backend.SetCell(area.Left+col-left, y, core.NewStyledCell(ru, style))
		}
	}
}

func (r *Renderer) placeCursor(f Frame) {
	if f.Doc == nil {
		r.backend.HideCursor()
		return
	}
	area := r.TextArea()
	line := f.Doc.LineText(f.Cursor.Line)
	col := displayColumn(line, int(f.Cursor.Column), f.TabWidth) - r.viewport.LeftColumn()
	row := int(f.Cursor.Line) - int(r.viewport.TopLine())
	if row < 0 || row >= area.Height() || col < 0 || col >= area.Width() {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(area.Left+col, area.Top+row)
}

func (r *Renderer) drawStatus(f Frame) {
	y := r.height - 2
	if y < 1 {
		return
	}
	r.backend.Fill(core.ScreenRect{Top: y, Left: 0, Bottom: y + 1, Right: r.width},
		core.NewStyledCell(' ', r.theme.Status))

	name := f.Name
	if f.Modified {
		name += " [+]"
	}
	r.putString(1, y, name, r.theme.Status)

	col := 1
	if f.Doc != nil {
		col = displayColumn(f.Doc.LineText(f.Cursor.Line), int(f.Cursor.Column), f.TabWidth) + 1
	}
	right := fmt.Sprintf("Ln %d, Col %d  pending %d", f.Cursor.Line+1, col, f.Pending)
	r.putString(max(r.width-core.StringWidth(right)-1, 0), y, right, r.theme.Status)
}

func (r *Renderer) drawBottomLine(f Frame) {
	y := r.height - 1
	if y < 1 {
		return
	}
	if f.Prompt != nil {
		x := r.putString(0, y, f.Prompt.Label, r.theme.PromptLabel)
		r.putString(x, y, f.Prompt.Input, r.theme.Text)
		return
	}
	r.putString(0, y, f.Message, r.theme.Message)
}

// putString draws s starting at (x, y), clipped to the screen, and returns
// the column after the last cell written.
func (r *Renderer) putString(x, y int, s string, style core.Style) int {
	for _, ru := range s {
		w := core.RuneWidth(ru)
		if x+w > r.width {
			break
		}
		if x >= 0 {
			r.backend.SetCell(x, y, core.NewStyledCell(ru, style))
		}
		x += w
	}
	return x
}

// spans are line-relative byte ranges.
type spans [][2]int

func (s spans) contains(off int) bool {
	for _, sp := range s {
		if off >= sp[0] && off < sp[1] {
			return true
		}
	}
	return false
}

// lineMarks clips highlights to [start, end) and makes them line-relative.
func lineMarks(highlights []buffer.Range, start, end buffer.ByteOffset) spans {
	var out spans
	for _, h := range highlights {
		if h.End <= start || h.Start >= end {
			continue
		}
		out = append(out, [2]int{int(max(h.Start, start) - start), int(min(h.End, end) - start)})
	}
	return out
}
