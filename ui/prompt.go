package ui

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter asks the user for values the flags did not provide.
type Prompter interface {
	Line(prompt string) (string, error)
	Password(prompt string) (string, error)
}

// TerminalPrompter reads from the terminal with line editing.
type TerminalPrompter struct{}

func (p *TerminalPrompter) Line(prompt string) (string, error) {
	rl, err := p.open(prompt + ": ")
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	return strings.TrimSpace(line), nil
}

// Password reads without echoing.
func (p *TerminalPrompter) Password(prompt string) (string, error) {
	rl, err := p.open("")
	if err != nil {
		return "", err
	}
	defer func() { _ = rl.Close() }()

	secret, err := rl.ReadPassword(prompt + ": ")
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	return string(secret), nil
}

func (p *TerminalPrompter) open(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt: %w", err)
	}
	return rl, nil
}

// IsTerminal reports whether stdin can be prompted.
func IsTerminal() bool {
	return readline.DefaultIsTerminal()
}
