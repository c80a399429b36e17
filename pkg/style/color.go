package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// SetColorMode configures lipgloss and pterm for "always", "never" or
// "auto" (colour only when stdout is a terminal and NO_COLOR is unset).
func SetColorMode(mode string) {
	switch mode {
	case "never":
		disableColor()
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
		pterm.EnableColor()
	default:
		if os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
			disableColor()
			return
		}
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		pterm.EnableColor()
	}
}

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableColor()
}
