package walker

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	descriptorpb "google.golang.org/protobuf/types/descriptorpb"
)

func strPtr(s string) *string { return &s }
func i32Ptr(i int32) *int32   { return &i }

func scalarField(name string, num int32, t descriptorpb.FieldDescriptorProto_Type, repeated bool) *descriptorpb.FieldDescriptorProto {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	if repeated {
		label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	}
	return &descriptorpb.FieldDescriptorProto{
		Name:   strPtr(name),
		Number: i32Ptr(num),
		Type:   t.Enum(),
		Label:  label.Enum(),
	}
}

func refField(name string, num int32, t descriptorpb.FieldDescriptorProto_Type, typeName string, repeated bool) *descriptorpb.FieldDescriptorProto {
	f := scalarField(name, num, t, repeated)
	f.TypeName = strPtr(typeName)
	return f
}

func TestBuildFileSimpleMessage(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("person.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Person"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("id", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, false),
					scalarField("name", 2, descriptorpb.FieldDescriptorProto_TYPE_STRING, false),
					scalarField("tags", 3, descriptorpb.FieldDescriptorProto_TYPE_STRING, true),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, file)
	require.NoError(t, err)
	require.Len(t, wf.Messages, 1)

	person := wf.Messages[0]
	require.Equal(t, "Person", person.Name())
	require.Len(t, person.Fields, 3)
	require.Equal(t, "readInt32", person.Fields[0].Read)
	require.True(t, person.Fields[2].Repeated)
	require.Equal(t, "", person.Fields[0].ReadPacked)
}

func TestBuildFileForwardReferenceAcrossMessages(t *testing.T) {
	// Node references Child, declared *after* it in the same file: the
	// two-pass design must resolve this without error.
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("tree.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Node"),
				Field: []*descriptorpb.FieldDescriptorProto{
					refField("child", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".pkg.Child", false),
				},
			},
			{
				Name: strPtr("Child"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("value", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, false),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, file)
	require.NoError(t, err)

	node := wf.Messages[0]
	require.NotNil(t, node.Fields[0].MessageType)
	require.Equal(t, "Child", node.Fields[0].MessageType.Name())
	require.Len(t, node.Fields[0].MessageType.Fields, 1, "forward-declared Child must have its fields filled in")
}

func TestBuildFileSelfReferencingMessage(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("tree.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Node"),
				Field: []*descriptorpb.FieldDescriptorProto{
					refField("children", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".pkg.Node", true),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, file)
	require.NoError(t, err)
	require.Same(t, wf.Messages[0], wf.Messages[0].Fields[0].MessageType)
}

func TestBuildFileMapField(t *testing.T) {
	entry := &descriptorpb.DescriptorProto{
		Name: strPtr("LabelsEntry"),
		Field: []*descriptorpb.FieldDescriptorProto{
			scalarField("key", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, false),
			scalarField("value", 2, descriptorpb.FieldDescriptorProto_TYPE_INT32, false),
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("labels.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name:       strPtr("Thing"),
				NestedType: []*descriptorpb.DescriptorProto{entry},
				Field: []*descriptorpb.FieldDescriptorProto{
					refField("labels", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".pkg.Thing.LabelsEntry", true),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, file)
	require.NoError(t, err)

	field := wf.Messages[0].Fields[0]
	require.True(t, field.Map)
	require.Equal(t, "Record<string, number>", field.TSType)
}

func TestBuildFileDuplicateFieldNumberFails(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("dup.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Bad"),
				Field: []*descriptorpb.FieldDescriptorProto{
					scalarField("a", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, false),
					scalarField("b", 1, descriptorpb.FieldDescriptorProto_TYPE_INT32, false),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	_, err = BuildFile(ctx, file)
	require.Error(t, err)
	walkerErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, DuplicateField, walkerErr.Kind)
}

func TestBuildFileEnumWithoutZeroValueFails(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("enum.proto"),
		Package: strPtr("pkg"),
		EnumType: []*descriptorpb.EnumDescriptorProto{
			{
				Name: strPtr("Status"),
				Value: []*descriptorpb.EnumValueDescriptorProto{
					{Name: strPtr("ACTIVE"), Number: i32Ptr(1)},
				},
			},
		},
	}
	_, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.Error(t, err)
}

func TestBuildFileMissingTypeFails(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("missing.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Bad"),
				Field: []*descriptorpb.FieldDescriptorProto{
					refField("other", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".pkg.DoesNotExist", false),
				},
			},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	_, err = BuildFile(ctx, file)
	require.Error(t, err)
	walkerErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, MissingType, walkerErr.Kind)
}

func TestBuildFileCrossFileImportTracked(t *testing.T) {
	common := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("common.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: strPtr("Address"), Field: []*descriptorpb.FieldDescriptorProto{
				scalarField("city", 1, descriptorpb.FieldDescriptorProto_TYPE_STRING, false),
			}},
		},
	}
	main := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("main.proto"),
		Package: strPtr("pkg"),
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: strPtr("Person"), Field: []*descriptorpb.FieldDescriptorProto{
				refField("address", 1, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ".pkg.Address", false),
			}},
		},
	}
	ctx, err := NewContext([]*descriptorpb.FileDescriptorProto{common, main})
	require.NoError(t, err)

	wf, err := BuildFile(ctx, main)
	require.NoError(t, err)
	require.Equal(t, []string{"common.proto"}, wf.Imports)
}

func TestLowerCamelCase(t *testing.T) {
	require.Equal(t, "fooBar", lowerCamelCase("foo_bar"))
	require.Equal(t, "foo", lowerCamelCase("foo"))
	require.Equal(t, "fooBarBaz", lowerCamelCase("foo_bar_baz"))
}
