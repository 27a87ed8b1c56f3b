package actions

import (
	"stoke.dev/stoke/internal/output"
	"stoke.dev/stoke/internal/runtime"
)

// ListAction prints every documented phony target, sorted by name
func ListAction(ctx *runtime.Context) error {
	docs := output.CollectTargetDocs(ctx.Registry.ListPhonyDocumented())
	if len(docs) == 0 {
		ctx.Splog.Info("No documented targets in %s.", ctx.File)
		ctx.Splog.Tip("Add a description with a trailing '## text' comment on the rule line.")
		return nil
	}
	ctx.Splog.Page(output.RenderTargetList(docs))
	return nil
}
