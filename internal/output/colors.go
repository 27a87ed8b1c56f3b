package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ConfigureColor selects the color profile for all rendered output.
// mode is "auto", "always" or "never"; auto enables color only when out is a
// terminal and NO_COLOR is unset.
func ConfigureColor(mode string, out io.Writer) {
	lipgloss.SetColorProfile(colorProfile(mode, out))
}

func colorProfile(mode string, out io.Writer) termenv.Profile {
	switch mode {
	case "always":
		return termenv.ANSI256
	case "never":
		return termenv.Ascii
	}

	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	f, ok := out.(*os.File)
	if !ok {
		return termenv.Ascii
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).EnvColorProfile()
}
