// Package extension provides the recommended schema fragments: Helper adds a help task and
// a help exception handler, Parser adds the default converter, and Basic combines both.
package extension
