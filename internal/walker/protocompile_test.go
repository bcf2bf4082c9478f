package walker

import (
	"context"
	"strings"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protoscript-go/protoscript/internal/ir"
)

// inMemoryResolver resolves imports from a fixed set of in-memory .proto
// sources, the same shape as a hand-rolled protocompile.Resolver backed by
// schema text fetched from elsewhere rather than the filesystem.
type inMemoryResolver struct {
	sources map[string]string
}

func (r *inMemoryResolver) FindFileByPath(path string) (protocompile.SearchResult, error) {
	src, ok := r.sources[path]
	if !ok {
		return protocompile.SearchResult{}, &fileNotFoundError{path: path}
	}
	return protocompile.SearchResult{Source: strings.NewReader(src)}, nil
}

type fileNotFoundError struct {
	path string
}

func (e *fileNotFoundError) Error() string {
	return "file not found: " + e.path
}

// TestBuildFileFromCompiledDescriptor exercises the walker against a
// descriptor produced by a real protoc-less compiler rather than a
// hand-built descriptorpb literal, so the message-type reference, package
// resolution and field numbering all come from actual parsed syntax.
func TestBuildFileFromCompiledDescriptor(t *testing.T) {
	resolver := &inMemoryResolver{sources: map[string]string{
		"person.proto": `
syntax = "proto3";
package pkg;

message Address {
  string city = 1;
}

message Person {
  int32 id = 1;
  string name = 2;
  repeated string tags = 3;
  Address address = 4;
}
`,
	}}

	compiler := protocompile.Compiler{
		Resolver:       resolver,
		SourceInfoMode: protocompile.SourceInfoStandard,
	}

	files, err := compiler.Compile(context.Background(), "person.proto")
	require.NoError(t, err)
	require.Len(t, files, 1)

	fdProto := protodesc.ToFileDescriptorProto(files[0])

	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{fdProto})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, fdProto)
	require.NoError(t, err)
	require.Len(t, wf.Messages, 2)

	var person *ir.Message
	for _, m := range wf.Messages {
		if m.Name() == "Person" {
			person = m
		}
	}
	require.NotNil(t, person)
	require.Len(t, person.Fields, 4)
	require.Equal(t, "Address", person.Fields[3].MessageType.Name())
}
