package renderer

import (
	"strings"

	"github.com/dshills/ayg/internal/menu"
	"github.com/dshills/ayg/internal/renderer/core"
)

const dialogButton = "[ OK ]"

func (r *Renderer) drawMenuBar(bar *menu.Bar) {
	if r.height <= 0 {
		return
	}
	r.backend.Fill(core.ScreenRect{Top: 0, Left: 0, Bottom: 1, Right: r.width},
		core.NewStyledCell(' ', r.theme.MenuBar))
	if bar == nil {
		return
	}

	selMenu, selItem := bar.Selected()
	x := 1
	for i, m := range bar.Menus() {
		label := " " + m.Title + " "
		style := r.theme.MenuBar
		open := bar.IsOpen() && i == selMenu
		if open {
			style = r.theme.MenuSelected
		}
		next := r.putString(x, 0, label, style)
		if open {
			r.drawDropDown(x, m, selItem)
		}
		x = next + 1
	}
	if !bar.IsOpen() {
		r.putString(x+1, 0, "F10 menu", r.theme.MenuBar)
	}
}

func (r *Renderer) drawDropDown(x int, m menu.Menu, selected int) {
	labelW, keyW := 0, 0
	for _, it := range m.Items {
		labelW = max(labelW, core.StringWidth(it.Label))
		keyW = max(keyW, core.StringWidth(it.Shortcut))
	}
	width := labelW + keyW + 4

	for i, it := range m.Items {
		style := r.theme.MenuBar
		if i == selected {
			style = r.theme.MenuSelected
		}
		y := 1 + i
		r.backend.Fill(core.ScreenRect{Top: y, Left: x, Bottom: y + 1, Right: min(x+width, r.width)},
			core.NewStyledCell(' ', style))
		r.putString(x+1, y, it.Label, style)
		r.putString(x+width-1-core.StringWidth(it.Shortcut), y, it.Shortcut, style)
	}
}

func (r *Renderer) drawDialog(d Dialog) {
	maxInner := max(r.width-6, 1)
	lines := wrapText(d.Text, maxInner)

	inner := max(core.StringWidth(d.Title)+2, core.StringWidth(dialogButton))
	for _, l := range lines {
		inner = max(inner, core.StringWidth(l))
	}
	inner = min(inner, maxInner)

	boxW := inner + 4
	boxH := len(lines) + 4
	left := max((r.width-boxW)/2, 0)
	top := max((r.height-boxH)/2, 1)
	right := left + boxW - 1
	bottom := top + boxH - 1

	r.backend.Fill(core.ScreenRect{Top: top, Left: left, Bottom: bottom + 1, Right: right + 1},
		core.NewStyledCell(' ', r.theme.Dialog))
	for x := left + 1; x < right; x++ {
		r.backend.SetCell(x, top, core.NewStyledCell('─', r.theme.Dialog))
		r.backend.SetCell(x, bottom, core.NewStyledCell('─', r.theme.Dialog))
	}
	for y := top + 1; y < bottom; y++ {
		r.backend.SetCell(left, y, core.NewStyledCell('│', r.theme.Dialog))
		r.backend.SetCell(right, y, core.NewStyledCell('│', r.theme.Dialog))
	}
	r.backend.SetCell(left, top, core.NewStyledCell('┌', r.theme.Dialog))
	r.backend.SetCell(right, top, core.NewStyledCell('┐', r.theme.Dialog))
	r.backend.SetCell(left, bottom, core.NewStyledCell('└', r.theme.Dialog))
	r.backend.SetCell(right, bottom, core.NewStyledCell('┘', r.theme.Dialog))

	if d.Title != "" {
		r.putString(left+2, top, " "+d.Title+" ", r.theme.DialogTitle)
	}
	for i, l := range lines {
		r.putString(left+2, top+1+i, l, r.theme.Dialog)
	}
	r.putString(left+(boxW-core.StringWidth(dialogButton))/2, bottom-1, dialogButton, r.theme.MenuSelected)
}

// wrapText breaks text into lines no wider than width, splitting at spaces
// and hard-breaking words that do not fit.
func wrapText(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for core.StringWidth(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				head, tail := splitAtWidth(word, width)
				out = append(out, head)
				word = tail
			}
			switch {
			case line == "":
				line = word
			case core.StringWidth(line)+1+core.StringWidth(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return out
}

func splitAtWidth(s string, width int) (string, string) {
	w := 0
	for i, r := range s {
		rw := core.RuneWidth(r)
		if w+rw > width {
			if i == 0 {
				return s[:len(string(r))], s[len(string(r)):]
			}
			return s[:i], s[i:]
		}
		w += rw
	}
	return s, ""
}
