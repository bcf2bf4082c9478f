package walker

import "github.com/protoscript-go/protoscript/internal/ir"

// Entry is what the identifier table maps a fully-qualified proto name to:
// which file declared it, and the IR node itself once built.
type Entry struct {
	Filename string
	Path     []string // namespacedName chain within the declaring file
	Node     ir.Node
}

// Table maps a fully-qualified proto name (e.g. ".pkg.Outer.Inner") to the
// file and in-file path that declares it. It is built once per request by
// a full descriptor scan before any file is walked, then consulted
// read-only during emission.
type Table struct {
	entries map[string]*Entry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*Entry)}
}

// Declare registers a top-level or nested message/enum under its
// fully-qualified proto name. Declaring the same name twice is a caller
// bug (duplicate input descriptors), not a recoverable condition, since
// protoc itself guarantees uniqueness within a compile.
func (t *Table) Declare(fqName, filename string, path []string) {
	t.entries[fqName] = &Entry{Filename: filename, Path: path}
}

// Bind attaches the built IR node to an already-declared name. Walker
// calls this in its second pass, once the node exists.
func (t *Table) Bind(fqName string, node ir.Node) {
	if e, ok := t.entries[fqName]; ok {
		e.Node = node
	}
}

// Lookup resolves a fully-qualified proto name (as it appears in a
// FieldDescriptorProto's type_name) to its table entry.
func (t *Table) Lookup(fqName string) (*Entry, bool) {
	e, ok := t.entries[fqName]
	return e, ok
}
