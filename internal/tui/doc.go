// Package tui provides terminal interaction for stoke.
//
// It handles:
//   - Structured logging and status reporting (Splog), optionally mirrored
//     to a rotating log file
//   - Interactive target selection (using survey)
package tui
