package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"
)

func strPtr(s string) *string { return &s }
func i32Ptr(i int32) *int32   { return &i }

func TestRunGeneratesOneFilePerRequestedFile(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("person.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Person"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:   strPtr("id"),
						Number: i32Ptr(1),
						Type:   descriptorpb.FieldDescriptorProto_TYPE_INT32.Enum(),
						Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					},
				},
			},
		},
	}
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"person.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{file},
		Parameter:      proto.String("language=typescript"),
	}

	resp := run(req)
	require.Empty(t, resp.GetError())
	require.Len(t, resp.File, 1)
	require.Equal(t, "person.pb.ts", resp.File[0].GetName())
	require.True(t, strings.Contains(resp.File[0].GetContent(), "export interface Person"))
}

func TestRunSkipsWellKnownTypesByDefault(t *testing.T) {
	wkt := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("google/protobuf/timestamp.proto"),
		Package: strPtr("google.protobuf"),
	}
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"google/protobuf/timestamp.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{wkt},
	}

	resp := run(req)
	require.Empty(t, resp.GetError())
	require.Empty(t, resp.File)
}

func TestRunReportsMissingTypeAsResponseError(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("bad.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Bad"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{
						Name:     strPtr("other"),
						Number:   i32Ptr(1),
						Type:     descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum(),
						Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
						TypeName: strPtr(".pkg.Missing"),
					},
				},
			},
		},
	}
	req := &pluginpb.CodeGeneratorRequest{
		FileToGenerate: []string{"bad.proto"},
		ProtoFile:      []*descriptorpb.FileDescriptorProto{file},
	}

	resp := run(req)
	require.NotEmpty(t, resp.GetError())
}
