/*
Package domain contains the core models shared by every layer of argtree.

It defines the declarative schema tree that describes a command line, the filters used to
recognise tokens, and the result bundle produced by one dispatch. This package is kept pure and
free of I/O so the schema can be built once and shared, read-only, by concurrent dispatches.

# Key Entities

  - Node: One element of the schema tree. Its Kind is one of Task, Group, Flag, Param or Value.
  - Filter: A Literal, Pattern or Predicate deciding whether a token belongs to a node.
  - Schema: The root of the tree plus root-level implementation, handlers and converters.
  - Extension: A reusable fragment merged into a Schema before matching begins.
  - Result: The argument map, matched tasks, trace and errors of one dispatch.
*/
package domain
