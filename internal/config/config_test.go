package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParameterBasic(t *testing.T) {
	opts, err := ParseParameter("root=./proto,dest=./gen,language=typescript,json.useProtoFieldName=true")
	require.NoError(t, err)
	require.Equal(t, "./proto", opts.Root)
	require.Equal(t, "./gen", opts.Dest)
	require.Equal(t, "typescript", opts.Language)
	require.True(t, opts.JSON.UseProtoFieldName)
	require.False(t, opts.JSON.EmitFieldsWithDefaultValues)
}

func TestParseParameterEmpty(t *testing.T) {
	opts, err := ParseParameter("")
	require.NoError(t, err)
	require.Equal(t, Options{}, opts)
}

func TestParseParameterBareBoolMeansTrue(t *testing.T) {
	opts, err := ParseParameter("typescript.emitDeclarationOnly")
	require.NoError(t, err)
	require.True(t, opts.TypeScript.EmitDeclarationOnly)
}

func TestParseParameterRejectsUnknownLanguage(t *testing.T) {
	_, err := ParseParameter("language=cobol")
	require.Error(t, err)
}

func TestParseParameterRejectsUnknownKey(t *testing.T) {
	_, err := ParseParameter("bogus=1")
	require.Error(t, err)
}

func TestMergeParameterWinsOverFile(t *testing.T) {
	file := Options{Root: "./from-file", Dest: "./dest-file"}
	param := Options{Dest: "./dest-param"}

	merged := Merge(file, param)
	require.Equal(t, "./from-file", merged.Root)
	require.Equal(t, "./dest-param", merged.Dest)
}

func TestLoadFileYAML(t *testing.T) {
	data := []byte("root: ./proto\ndest: ./gen\njson:\n  useProtoFieldName: true\n")
	f, err := LoadFile(data)
	require.NoError(t, err)
	require.Equal(t, "./proto", f.Root)
	require.True(t, f.JSON.UseProtoFieldName)
}

func TestLoadFileEmpty(t *testing.T) {
	f, err := LoadFile(nil)
	require.NoError(t, err)
	require.Equal(t, File{}, f)
}
