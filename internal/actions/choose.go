package actions

import (
	"fmt"

	"stoke.dev/stoke/internal/output"
	"stoke.dev/stoke/internal/runtime"
	"stoke.dev/stoke/internal/tui"
)

// promptSelect is swapped out in tests
var promptSelect = tui.PromptSelect

// ChooseAction lets the user pick a documented target interactively and builds it
func ChooseAction(ctx *runtime.Context) error {
	target, err := chooseTarget(ctx)
	if err != nil {
		return err
	}
	return RunAction(ctx, RunOptions{Targets: []string{target}})
}

func chooseTarget(ctx *runtime.Context) (string, error) {
	docs := output.CollectTargetDocs(ctx.Registry.ListPhonyDocumented())
	if len(docs) == 0 {
		return "", fmt.Errorf("no documented targets in %s to choose from", ctx.File)
	}

	width := 0
	for _, d := range docs {
		width = max(width, len(d.Name))
	}

	def := ctx.DefaultTarget()
	defaultIndex := -1
	options := make([]tui.SelectOption, len(docs))
	for i, d := range docs {
		options[i] = tui.SelectOption{
			Label: fmt.Sprintf("%-*s  %s", width, d.Name, d.Description),
			Value: d.Name,
		}
		if d.Name == def {
			defaultIndex = i
		}
	}

	return promptSelect("Target to build:", options, defaultIndex)
}
