package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned when prompts cannot be shown
var ErrInteractiveDisabled = errors.New("interactive prompts are disabled (not a terminal or STOKE_NO_INTERACTIVE is set)")

// ErrPromptCanceled is returned when the user interrupts a prompt
var ErrPromptCanceled = errors.New("canceled")

// checkInteractiveAllowed returns an error if prompts are disabled or stdin is not a terminal
func checkInteractiveAllowed() error {
	if os.Getenv("STOKE_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrInteractiveDisabled
	}
	return nil
}

// SelectOption is one choice in a selection prompt
type SelectOption struct {
	Label string
	Value string
}

// PromptSelect asks the user to pick one option
func PromptSelect(message string, options []SelectOption, defaultIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to choose from")
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}

	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		PageSize: 15,
	}
	if defaultIndex >= 0 && defaultIndex < len(labels) {
		prompt.Default = labels[defaultIndex]
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrPromptCanceled
		}
		return "", err
	}
	return options[index].Value, nil
}
