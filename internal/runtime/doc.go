// Package runtime provides the execution context for stoke commands.
//
// It encapsulates shared dependencies and configuration needed by actions,
// such as the loaded registry, the engine, the logger and the working directory.
package runtime
