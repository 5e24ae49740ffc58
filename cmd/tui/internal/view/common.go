package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel carries the terminal dimensions shared by every screen.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg tells the root model to return to the menu.
type BackMsg struct{}

// Back is used as a tea.Cmd by screens that want to leave.
func Back() tea.Msg {
	return BackMsg{}
}
