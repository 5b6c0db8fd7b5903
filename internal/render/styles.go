package render

import "github.com/charmbracelet/lipgloss"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Prompt styles the session prompt for the given model.
func Prompt(model string) string {
	return promptStyle.Render("["+model+"]") + " >>> "
}

// ErrorLine formats an error for inline display.
func ErrorLine(msg string) string {
	return errorStyle.Render("Error:") + " " + msg
}
