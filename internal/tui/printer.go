package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results, styling them only when color is enabled.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a Printer for out, detecting color support.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, color: ColorEnabled(out)}
}

// Line writes an unstyled line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Title writes a heading line.
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.out, p.render(TitleStyle, text))
}

// Success writes a line highlighted as a positive outcome.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.out, p.render(SuccessStyle, text))
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}
