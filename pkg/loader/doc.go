/*
Package loader reads schema documents (YAML or JSON) and compiles them into domain.Schema values.

Callbacks are referenced by name and resolved through a registry.Registry:

	name: deploy
	parsers: [default]
	children:
	  - kind: flag
	    name: verbose
	    filters: ["--verbose", "-v"]
	    inherit: true
	  - kind: task
	    name: up
	    filters: [up]
	    execute: deploy-up
	    children:
	      - kind: param
	        name: replicas
	        format: integer
	        filters: ["--replicas="]

The parser name "default" always resolves to schema.Converter().
*/
package loader
