// Package config implements the toolchain's two-layer configuration
// surface: a project-root YAML file and the compiler's comma-separated
// parameter string, merged with the parameter string winning per key.
package config

// Options is the merged configuration available to the walker and emitter.
type Options struct {
	Root     string `yaml:"root"`
	Exclude  []string `yaml:"exclude"`
	Dest     string `yaml:"dest"`
	Language string `yaml:"language"` // "typescript" or "javascript"

	JSON struct {
		EmitFieldsWithDefaultValues bool `yaml:"emitFieldsWithDefaultValues"`
		UseProtoFieldName           bool `yaml:"useProtoFieldName"`
	} `yaml:"json"`

	TypeScript struct {
		EmitDeclarationOnly bool `yaml:"emitDeclarationOnly"`
	} `yaml:"typescript"`
}

// File is the shape a project-root YAML config file unmarshals into.
// Discovering that file on disk is outside this package, which only owns
// the struct shape and the merge logic; cmd/protoc-gen-ts loads no such
// file and merges the parameter string over empty Options.
type File struct {
	Options `yaml:",inline"`
}

// Merge layers paramOpts over fileOpts: any non-zero field set by the
// parameter string wins over the file layer.
func Merge(fileOpts, paramOpts Options) Options {
	out := fileOpts

	if paramOpts.Root != "" {
		out.Root = paramOpts.Root
	}
	if len(paramOpts.Exclude) > 0 {
		out.Exclude = paramOpts.Exclude
	}
	if paramOpts.Dest != "" {
		out.Dest = paramOpts.Dest
	}
	if paramOpts.Language != "" {
		out.Language = paramOpts.Language
	}
	if paramOpts.JSON.EmitFieldsWithDefaultValues {
		out.JSON.EmitFieldsWithDefaultValues = true
	}
	if paramOpts.JSON.UseProtoFieldName {
		out.JSON.UseProtoFieldName = true
	}
	if paramOpts.TypeScript.EmitDeclarationOnly {
		out.TypeScript.EmitDeclarationOnly = true
	}
	return out
}
