// Package actions provides high-level business logic for CLI commands.
//
// Each action corresponds to a stoke mode (build, list, choose, plan)
// and orchestrates operations across the engine, output, and tui packages.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Engine, Registry, Splog, and other dependencies
//   - Actions are stateless - all state lives in the Engine for one invocation
//   - Actions handle user interaction through the tui package
package actions
