// Package runtime provides the execution context for regraft commands.
//
// It encapsulates shared dependencies needed by actions: the engine
// instance, logger, repository root path, and the optional GitHub client.
package runtime
