/*
Package dsl provides a Go DSL for programmatically constructing argtree schemas.

It offers a type-safe, fluent builder as an alternative to YAML or JSON schema files,
which is useful for commands wired directly in Go, unit tests and IDE autocompletion.

Example usage:

	package main

	import (
		"github.com/aretw0/argtree/pkg/dsl"
		"github.com/aretw0/argtree/pkg/schema"
	)

	func main() {
		b := dsl.New("git").Parsers(schema.Converter())

		b.Flag("verbose", "--verbose", "-v").Inherit()

		remote := b.Task("remote", "remote").Help("Manage remotes")
		remote.Group("add").Value("name")

		s := b.MustBuild()
		// ... pass s to argtree.New(s)
	}
*/
package dsl
