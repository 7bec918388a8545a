package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ANSI palette indices
const (
	Red    = "1"
	Green  = "2"
	Yellow = "3"
	Blue   = "4"
	Cyan   = "6"
	Gray   = "8"

	BrightRed = "9"
)

var (
	output       = termenv.NewOutput(os.Stdout)
	colorEnabled = output.Profile != termenv.Ascii && !output.EnvNoColor()
)

// EnableColor forces colouring on or off
func EnableColor(enable bool) {
	colorEnabled = enable
	if enable && output.Profile == termenv.Ascii {
		output = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.ANSI))
	}
}

func IsColorEnabled() bool {
	return colorEnabled
}

// Profile returns the colour profile used for console output
func Profile() termenv.Profile {
	if !colorEnabled {
		return termenv.Ascii
	}
	return output.Profile
}

func style(text string) termenv.Style {
	return output.String(text)
}

func Colorize(color, text string) string {
	if !colorEnabled {
		return text
	}
	return style(text).Foreground(output.Color(color)).String()
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	if !colorEnabled {
		return text
	}
	return style(text).Bold().String()
}

// Tag renders a bracketed banner label such as `[SL info]`
func Tag(color, label string) string {
	tag := "[SL " + label + "]"
	if !colorEnabled {
		return tag
	}
	return style(tag).Foreground(output.Color(color)).Bold().String()
}

func Position(line, col int) string {
	pos := fmt.Sprintf("%d:%d", line, col)
	if !colorEnabled {
		return pos
	}
	return CyanText(pos)
}

// Caret returns a marker line pointing at column col (1-based)
func Caret(col int) string {
	if col < 1 {
		col = 1
	}
	return strings.Repeat(" ", col-1) + Colorize(BrightRed, "^")
}

func ErrorWithPosition(line, col int, message, context string) string {
	if !colorEnabled {
		return fmt.Sprintf("Error at %d:%d: %s\n%s", line, col, message, context)
	}

	return fmt.Sprintf("%s at %s: %s\n%s",
		BrightRedText(BoldText("Error")),
		Position(line, col),
		message,
		GrayText(context))
}
