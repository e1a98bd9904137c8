package picker

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorAccent = lipgloss.Color("#6B50FF")
	colorSubtle = lipgloss.Color("#605F6B")
	colorText   = lipgloss.Color("#DFDBFF")
	colorError  = lipgloss.Color("#FF577D")
)

// FormTheme returns the default form theme.
func FormTheme() *huh.Theme {
	h := huh.ThemeBase()

	h.Focused.Base = h.Focused.Base.BorderForeground(colorAccent)
	h.Focused.Card = h.Focused.Base
	h.Focused.Title = h.Focused.Title.Foreground(colorAccent).Bold(true)
	h.Focused.NoteTitle = h.Focused.NoteTitle.Foreground(colorAccent).Bold(true).MarginBottom(1)
	h.Focused.Description = h.Focused.Description.Foreground(colorSubtle)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(colorError)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(colorError)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(colorAccent)
	h.Focused.NextIndicator = h.Focused.NextIndicator.Foreground(colorAccent)
	h.Focused.PrevIndicator = h.Focused.PrevIndicator.Foreground(colorAccent)
	h.Focused.Option = h.Focused.Option.Foreground(colorText)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(colorAccent)
	h.Focused.UnselectedOption = h.Focused.UnselectedOption.Foreground(colorText)
	h.Focused.FocusedButton = h.Focused.FocusedButton.
		Foreground(colorText).
		Background(colorAccent)
	h.Focused.Next = h.Focused.FocusedButton
	h.Focused.BlurredButton = h.Focused.BlurredButton.
		Foreground(colorText).
		Background(colorSubtle)

	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(colorAccent)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(colorSubtle)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(colorAccent)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Card = h.Blurred.Base
	h.Blurred.NextIndicator = lipgloss.NewStyle()
	h.Blurred.PrevIndicator = lipgloss.NewStyle()

	h.Group.Title = h.Focused.Title
	h.Group.Description = h.Focused.Description

	return h
}
