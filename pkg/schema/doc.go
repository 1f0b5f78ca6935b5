// Package schema converts raw tokens into typed values and checks schema trees for
// definition mistakes.
//
// It defines a small set of built-in formats (boolean, integer, number, string) and the
// default domain.Converter that applies them based on a node's Format:
//
//	s := &domain.Schema{
//	    Parsers: []domain.Converter{schema.Converter()},
//	    Children: []*domain.Node{
//	        {Kind: domain.KindParam, Name: "retries", Format: "int", Filters: domain.Literals("--retries=")},
//	    },
//	}
//
// Converters are tried in order and the first one that accepts wins; when all of them
// decline, the raw token is stored unchanged.
//
// Validate reports structural mistakes such as missing filters, groups without children
// or IndexedBy references to nodes that do not exist:
//
//	if err := schema.Validate(s); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema
