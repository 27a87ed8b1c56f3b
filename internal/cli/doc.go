// Package cli wires the stoke command line onto the actions package.
package cli
