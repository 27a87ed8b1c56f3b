package actions

import (
	"fmt"
	"strings"

	"stoke.dev/stoke/internal/output"
	"stoke.dev/stoke/internal/runtime"
)

// PlanAction prints the execution order for the requested targets without running anything
func PlanAction(ctx *runtime.Context, opts RunOptions) error {
	targets, err := requestedTargets(ctx, opts.Targets)
	if err != nil {
		return err
	}

	plan, err := ctx.Engine.Plan(targets...)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for i, name := range plan {
		sb.WriteString(output.ColorDim(padIndex(i+1, len(plan))))
		sb.WriteString(" ")
		sb.WriteString(output.ColorTarget(name))
		sb.WriteString("\n")
	}
	ctx.Splog.Page(sb.String())
	return nil
}

func padIndex(i, total int) string {
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("%*d.", width, i)
}
