// Package decl reads target declarations into a registry.
//
// Two formats are understood:
//   - make-style text (Stokefile, Makefile): "name: deps ## description" rules
//     with tab-indented recipe lines and a .PHONY meta-target
//   - HCL (*.hcl): target blocks with deps, recipe, phony and description
//     attributes, evaluated with an env object holding the process environment
//
// The format is chosen from the file extension.
package decl
