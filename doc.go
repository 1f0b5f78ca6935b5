/*
Package argtree is a declarative command line argument interpreter.

A command line is described as a tree of nodes (tasks, groups, flags, params and values).
The engine consumes the argument vector one token at a time, matching each token against
the children of the active scopes, and produces a dispatch result: the argument map, the
chain of entered tasks, a trace of which node claimed which token, and any unmatched tokens.
The host then runs the implementation adopted from the last entered task, or, when some
tokens matched nothing, folds the collected exception handlers from the innermost task outwards.

# Concept

  - Task: enters a new scope and contributes an implementation and exception handlers.
  - Group: a transparent scope whose children become matchable once its filter matches.
  - Flag: stores true under its name, or false when the name starts with "!".
  - Param: strips the matched prefix and stores the converted remainder ("--name=x").
  - Value: fills a positional slot, optionally counted from a back-referenced node.

Children of outer scopes stay reachable only when they are tasks or marked Inherit.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/argtree"
		"github.com/aretw0/argtree/pkg/domain"
		"github.com/aretw0/argtree/pkg/dsl"
		"github.com/aretw0/argtree/pkg/extension"
	)

	func main() {
		b := dsl.New("greet").Help("Say hello")
		b.Task("hello", "hello").
			Do(func(ctx context.Context, res *domain.Result) error {
				fmt.Println("hello,", res.Args.String("name"))
				return nil
			}).
			Param("name", "--name=")

		argtree.New(b.MustBuild(), argtree.WithExit(true)).
			Use(extension.Basic()).
			Execute(context.Background(), nil, "")
	}
*/
package argtree
