package emit

import (
	"github.com/protoscript-go/protoscript/internal/ir"
)

// emitTypeDecl writes a node's type declaration: for an enum, a TypeScript
// string-literal union plus its lookup tables and conversion functions; for
// a message, a TypeScript interface. In JavaScript mode, which has no type
// syntax, an enum gets only its lookup tables and conversion functions and
// a message gets no declaration of its own.
func emitTypeDecl(b *sourceBuilder, node ir.Node, cfg Config) {
	switch n := node.(type) {
	case *ir.Enum:
		emitEnumDecl(b, n, cfg)
	case *ir.Message:
		if n.IsMap {
			return // map-entry messages never receive a standalone declaration
		}
		emitMessageDecl(b, n, cfg)
	}
}

// emitEnumDecl writes a string-literal union naming each enumerator, plus
// the name<->number lookup tables and <Name>ToInt/<Name>FromInt conversion
// functions the binary codec calls at the wire boundary (unknown numeric
// values that survive decoding pass through <Name>FromInt unchanged as raw
// numbers).
func emitEnumDecl(b *sourceBuilder, e *ir.Enum, cfg Config) {
	leadingComment(b, e.Leading())
	if isTypeScript(cfg) {
		b.P("export type ", e.Name(), " =")
		b.In()
		for i, v := range e.Values {
			sep := " |"
			if i == len(e.Values)-1 {
				sep = ";"
			}
			b.P(`"`, v.Name, `"`, sep)
		}
		b.Out()
	}

	if isTypeScript(cfg) {
		b.P("const ", e.Name(), "ToIntMap: { [key: string]: number } = {")
	} else {
		b.P("/** @enum {number} */")
		b.P("const ", e.Name(), "ToIntMap = Object.freeze({")
	}
	b.In()
	for _, v := range e.Values {
		b.P(v.Name, ": ", v.Number, ",")
	}
	b.Out()
	if isTypeScript(cfg) {
		b.P("};")
	} else {
		b.P("});")
	}

	if isTypeScript(cfg) {
		b.P("const ", e.Name(), "FromIntMap: { [key: number]: ", e.Name(), " } = {")
	} else {
		b.P("const ", e.Name(), "FromIntMap = Object.freeze({")
	}
	b.In()
	for _, v := range e.Values {
		b.P(v.Number, ": ", `"`, v.Name, `"`, ",")
	}
	b.Out()
	if isTypeScript(cfg) {
		b.P("};")
	} else {
		b.P("});")
	}

	if isTypeScript(cfg) {
		b.P("export function ", e.Name(), "ToInt(v: ", e.Name(), "): number {")
	} else {
		b.P("export function ", e.Name(), "ToInt(v) {")
	}
	b.In()
	b.P("return ", e.Name(), "ToIntMap[v];")
	b.Out()
	b.P("}")

	if isTypeScript(cfg) {
		b.P("export function ", e.Name(), "FromInt(n: number): ", e.Name(), " | number {")
	} else {
		b.P("export function ", e.Name(), "FromInt(n) {")
	}
	b.In()
	b.P("return n in ", e.Name(), "FromIntMap ? ", e.Name(), "FromIntMap[n] : n;")
	b.Out()
	b.P("}")
}

func emitMessageDecl(b *sourceBuilder, m *ir.Message, cfg Config) {
	leadingComment(b, m.Leading())

	for _, child := range m.Children {
		emitTypeDecl(b, child, cfg)
	}

	if !isTypeScript(cfg) {
		return // JavaScript output carries no structural type for the message itself
	}

	b.P("export interface ", m.Name(), " {")
	b.In()
	for _, f := range m.Fields {
		optional := ""
		if f.Optional {
			optional = "?"
		}
		b.P(f.Name, optional, ": ", f.TSType, ";")
	}
	b.Out()
	b.P("}")

	if cfg.TypeScript.EmitDeclarationOnly {
		return
	}

	b.P("export interface ", m.Name(), "JSON {")
	b.In()
	for _, f := range m.Fields {
		optional := ""
		if f.Optional || !defaultValueAlwaysEmitted(cfg) {
			optional = "?"
		}
		b.P(jsonNameFor(f, cfg), optional, ": ", f.TSTypeJSON, ";")
	}
	b.Out()
	b.P("}")
}

func defaultValueAlwaysEmitted(cfg Config) bool {
	return cfg.JSON.EmitFieldsWithDefaultValues
}

// jsonNameFor picks the write-side JSON key for a field: protoName under
// useProtoFieldName, jsonName otherwise.
func jsonNameFor(f *ir.Field, cfg Config) string {
	if cfg.JSON.UseProtoFieldName {
		return f.ProtoName
	}
	return f.JSONName
}
