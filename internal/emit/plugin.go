package emit

import "github.com/protoscript-go/protoscript/internal/ir"

// Imports is the set of extra module specifiers a Plugin's contribution
// needs the generated file to import.
type Imports []string

// Plugin is an extension hook: an explicit interface the caller registers
// per invocation as a []Plugin, rather than a reflection-based global
// registry mutated by init() side effects.
type Plugin interface {
	// Contribute is called once per top-level IR node in a file. It
	// returns any additional imports the emitted service code needs and
	// the source text of that service code, which File places after the
	// type declarations and before the binary and JSON codec blocks.
	Contribute(node ir.Node, cfg Config) (imports Imports, services string, err error)
}
