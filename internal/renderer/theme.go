package renderer

import "github.com/dshills/ayg/internal/renderer/core"

// Theme holds the styles used for each screen element.
type Theme struct {
	Text         core.Style
	Misspelled   core.Style
	MenuBar      core.Style
	MenuSelected core.Style
	Status       core.Style
	Message      core.Style
	PromptLabel  core.Style
	Dialog       core.Style
	DialogTitle  core.Style
}

// DefaultTheme returns the default theme with misspellings drawn in
// highlight.
func DefaultTheme(highlight core.Color) Theme {
	bar := core.DefaultStyle().Reverse()
	return Theme{
		Text:         core.DefaultStyle(),
		Misspelled:   core.DefaultStyle().WithForeground(highlight).Underline(),
		MenuBar:      bar,
		MenuSelected: core.DefaultStyle().Bold(),
		Status:       bar,
		Message:      core.DefaultStyle(),
		PromptLabel:  core.DefaultStyle().Bold(),
		Dialog:       core.DefaultStyle(),
		DialogTitle:  core.DefaultStyle().Bold(),
	}
}
