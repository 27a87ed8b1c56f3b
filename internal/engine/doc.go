// Package engine decides what to rebuild and drives recipe execution.
//
// It is the core of stoke, responsible for:
//   - Resolving a requested target into a depth-first execution plan
//   - Detecting unknown targets and dependency cycles before anything runs
//   - Evaluating staleness from artifact modification times
//   - Walking the plan through the invocation state machine
//
// The engine never runs commands itself; it hands stale targets to a Runner.
package engine
