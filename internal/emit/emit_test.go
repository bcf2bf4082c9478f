package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protoscript-go/protoscript/internal/config"
	"github.com/protoscript-go/protoscript/internal/ir"
	"github.com/protoscript-go/protoscript/internal/walker"
)

func personFixture() *walker.File {
	msg := &ir.Message{
		NameStr:    "Person",
		Namespaced: "Person",
		Fields: []*ir.Field{
			{Name: "id", ProtoName: "id", JSONName: "id", Index: 1, Read: "readInt32", Write: "writeInt32", TSType: "number", TSTypeJSON: "number", DefaultValue: "0"},
			{Name: "name", ProtoName: "name", JSONName: "name", Index: 2, Read: "readString", Write: "writeString", TSType: "string", TSTypeJSON: "string", DefaultValue: `""`},
			{Name: "tags", ProtoName: "tags", JSONName: "tags", Index: 3, Repeated: true, Read: "readString", Write: "writeString", TSType: "string[]", TSTypeJSON: "string[]"},
		},
	}
	return &walker.File{Messages: []*ir.Message{msg}}
}

func TestEmitFileTypeScriptContainsInterfaceAndCodec(t *testing.T) {
	wf := personFixture()
	src, err := File("person.proto", wf, config.Options{Language: "typescript"}, nil)
	require.NoError(t, err)
	text := string(src)

	require.True(t, strings.Contains(text, "export interface Person {"))
	require.True(t, strings.Contains(text, "id: number;"))
	require.True(t, strings.Contains(text, "tags: string[];"))
	require.True(t, strings.Contains(text, "export function encodePerson"))
	require.True(t, strings.Contains(text, "export function decodePerson"))
	require.True(t, strings.Contains(text, "export function encodePersonJSON"))
	require.True(t, strings.Contains(text, "import { Writer, Decoder"))
}

func TestEmitFileDeclarationOnlySkipsCodec(t *testing.T) {
	wf := personFixture()
	opts := config.Options{Language: "typescript"}
	opts.TypeScript.EmitDeclarationOnly = true
	src, err := File("person.proto", wf, opts, nil)
	require.NoError(t, err)
	text := string(src)

	require.True(t, strings.Contains(text, "export interface Person"))
	require.False(t, strings.Contains(text, "export function encodePerson"))
}

func TestEmitFileJavaScriptSkipsInterface(t *testing.T) {
	wf := personFixture()
	src, err := File("person.proto", wf, config.Options{Language: "javascript"}, nil)
	require.NoError(t, err)
	text := string(src)

	require.False(t, strings.Contains(text, "export interface"))
	require.True(t, strings.Contains(text, "export function encodePerson"))
}

func TestOutputFilenameDerivation(t *testing.T) {
	require.Equal(t, "person.pb.ts", OutputFilename("person.proto", config.Options{Language: "typescript"}))
	require.Equal(t, "person.pb.js", OutputFilename("person.proto", config.Options{Language: "javascript"}))
	require.Equal(t, "out/person.pb.ts", OutputFilename("person.proto", config.Options{Language: "typescript", Dest: "out"}))
}

func TestEnumDeclarationIncludesZeroValue(t *testing.T) {
	en := &ir.Enum{NameStr: "Status", Namespaced: "Status", Values: []ir.EnumValue{{Name: "UNKNOWN", Number: 0}, {Name: "ACTIVE", Number: 1}}}
	wf := &walker.File{Enums: []*ir.Enum{en}}
	src, err := File("status.proto", wf, config.Options{Language: "typescript"}, nil)
	require.NoError(t, err)
	text := string(src)
	require.True(t, strings.Contains(text, `export type Status =`))
	require.True(t, strings.Contains(text, `"UNKNOWN" |`))
	require.True(t, strings.Contains(text, `"ACTIVE";`))
	require.True(t, strings.Contains(text, "export function StatusToInt(v: Status): number {"))
	require.True(t, strings.Contains(text, "export function StatusFromInt(n: number): Status | number {"))
}
