// Package emit turns a walker.File's IR tree into generated TypeScript or
// JavaScript source text: type declarations, a binary wire codec, and a
// canonical proto3 JSON codec, plus whatever any registered Plugin
// contributes.
package emit

import (
	"path"
	"sort"
	"strings"

	"github.com/protoscript-go/protoscript/internal/ir"
	"github.com/protoscript-go/protoscript/internal/walker"
)

// OutputFilename derives the generated filename from the source .proto
// path: <stem>.pb.ts for TypeScript, <stem>.pb.js for JavaScript,
// colocated with the source unless dest is set.
func OutputFilename(protoFilename string, cfg Config) string {
	stem := strings.TrimSuffix(protoFilename, path.Ext(protoFilename))
	ext := ".pb.ts"
	if !isTypeScript(cfg) {
		ext = ".pb.js"
	}
	out := stem + ext
	if cfg.Dest == "" {
		return out
	}
	return path.Join(cfg.Dest, out)
}

// File renders a complete generated file's source text for one
// walker.File, in a deterministic block order: header banner, runtime
// import, plugin imports, cross-file imports (alphabetical within each
// block), type declarations, plugin services, binary codec, JSON codec.
func File(protoFilename string, wf *walker.File, cfg Config, plugins []Plugin) ([]byte, error) {
	b := &sourceBuilder{}

	b.P("// Code generated by protoc-gen-ts. DO NOT EDIT.")
	b.P("// source: ", protoFilename)
	b.P()

	emitRuntimeImport(b, fileHasBytesField(wf))

	var pluginImports []string
	var services []string
	for _, n := range topLevelNodes(wf) {
		for _, p := range plugins {
			imps, svc, err := p.Contribute(n, cfg)
			if err != nil {
				return nil, err
			}
			pluginImports = append(pluginImports, imps...)
			if svc != "" {
				services = append(services, svc)
			}
		}
	}
	emitImportBlock(b, pluginImports)
	emitCrossFileImports(b, wf)
	b.P()

	for _, m := range wf.Messages {
		emitTypeDecl(b, m, cfg)
		b.P()
	}
	for _, e := range wf.Enums {
		emitTypeDecl(b, e, cfg)
		b.P()
	}

	for _, svc := range services {
		b.P(svc)
		b.P()
	}

	if cfg.TypeScript.EmitDeclarationOnly {
		return b.Bytes(), nil
	}

	for _, m := range wf.Messages {
		emitBinaryCodec(b, m, cfg)
		b.P()
	}
	for _, m := range wf.Messages {
		emitJSONCodec(b, m, cfg)
		b.P()
	}

	return b.Bytes(), nil
}

func topLevelNodes(wf *walker.File) []ir.Node {
	var nodes []ir.Node
	for _, m := range wf.Messages {
		nodes = append(nodes, m)
	}
	for _, e := range wf.Enums {
		nodes = append(nodes, e)
	}
	return nodes
}

func emitRuntimeImport(b *sourceBuilder, needsBase64 bool) {
	if needsBase64 {
		b.P(`import { Writer, Decoder, encodeBytesBase64, decodeBytesBase64 } from "`, runtimeModule, `";`)
		return
	}
	b.P(`import { Writer, Decoder } from "`, runtimeModule, `";`)
}

// fileHasBytesField reports whether any message in the file, at any
// nesting depth, has a bytes-typed field, the condition that gates the
// base64 helper import.
func fileHasBytesField(wf *walker.File) bool {
	for _, m := range wf.Messages {
		if messageHasBytesField(m) {
			return true
		}
	}
	return false
}

func messageHasBytesField(m *ir.Message) bool {
	for _, f := range m.Fields {
		if f.Read == "readBytes" {
			return true
		}
	}
	for _, child := range m.Children {
		if cm, ok := child.(*ir.Message); ok && messageHasBytesField(cm) {
			return true
		}
	}
	return false
}

func emitImportBlock(b *sourceBuilder, specifiers []string) {
	if len(specifiers) == 0 {
		return
	}
	seen := make(map[string]bool)
	var uniq []string
	for _, s := range specifiers {
		if !seen[s] {
			seen[s] = true
			uniq = append(uniq, s)
		}
	}
	sort.Strings(uniq)
	for _, s := range uniq {
		b.P(s)
	}
}

// emitCrossFileImports writes one import statement per file in
// wf.Imports, alphabetical by resolved specifier.
func emitCrossFileImports(b *sourceBuilder, wf *walker.File) {
	if len(wf.Imports) == 0 {
		return
	}
	specifiers := make([]string, 0, len(wf.Imports))
	for _, imported := range wf.Imports {
		specifiers = append(specifiers, importSpecifier(imported))
	}
	sort.Strings(specifiers)
	for _, line := range specifiers {
		b.P(line)
	}
}

func importSpecifier(to string) string {
	protoStem := strings.TrimSuffix(path.Base(to), path.Ext(to))
	return `import * as ` + importAlias(to) + ` from "./` + protoStem + `.pb";`
}

func importAlias(protoFilename string) string {
	base := path.Base(protoFilename)
	base = strings.TrimSuffix(base, path.Ext(base))
	var b strings.Builder
	upperNext := true
	for _, r := range base {
		if r == '_' || r == '-' || r == '.' {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(toUpperASCII(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toUpperASCII(r rune) rune {
	if 'a' <= r && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
