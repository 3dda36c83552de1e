package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	gray   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

// Printer writes user-facing report lines. Diagnostics belong to the logger.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func (p *Printer) Created(path string) {
	fmt.Fprintln(p.Out, "  "+green.Render("Created:")+" "+path)
}

func (p *Printer) Updated(path string) {
	fmt.Fprintln(p.Out, "  "+green.Render("Updated:")+" "+path)
}

func (p *Printer) Skip(path, reason string) {
	fmt.Fprintln(p.Out, "  "+yellow.Render("Skip:")+" "+path+" "+gray.Render("("+reason+")"))
}

// Step announces an action in progress.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintln(p.Out, cyan.Render("● ")+fmt.Sprintf(format, args...))
}

// Success marks a finished step.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, green.Render("✓ ")+fmt.Sprintf(format, args...))
}

func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

func (p *Printer) Blank() {
	fmt.Fprintln(p.Out)
}

// NextSteps prints a numbered list of follow-up commands.
func (p *Printer) NextSteps(title string, steps ...string) {
	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, title)
	for i, step := range steps {
		fmt.Fprintf(p.Out, "  %d. %s\n", i+1, step)
	}
}

// Hint prints an indented, dimmed command suggestion.
func (p *Printer) Hint(label, command string) {
	fmt.Fprintln(p.Out, label+" "+gray.Render(command))
}

// Error prints a diagnostic to the error stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Err, red.Render("Error:")+" "+fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.Err, yellow.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Detail echoes captured tool output to the error stream, indented.
func (p *Printer) Detail(output string) {
	output = strings.TrimRight(output, "\n")
	if strings.TrimSpace(output) == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		fmt.Fprintln(p.Err, "  "+line)
	}
}
