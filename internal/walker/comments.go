package walker

import (
	"strconv"
	"strings"

	descriptorpb "google.golang.org/protobuf/types/descriptorpb"
)

// Field numbers of descriptor.proto messages, used to build the
// SourceCodeInfo path keys that locate a node's leading comment.
const (
	fileMessagePath = 4
	fileEnumPath    = 5

	messageFieldPath   = 2
	messageNestedPath  = 3
	messageEnumPath    = 4

	enumValuePath = 2
)

// commentIndex maps a comma-joined SourceCodeInfo path ("4,0,2,1") to its
// leading comment text, built once per file the same way
// protoc-gen-go/generator.go's extractComments does.
type commentIndex map[string]string

func buildCommentIndex(f *descriptorpb.FileDescriptorProto) commentIndex {
	idx := make(commentIndex)
	for _, loc := range f.GetSourceCodeInfo().GetLocation() {
		lc := loc.GetLeadingComments()
		if lc == "" {
			continue
		}
		idx[joinPath(loc.GetPath())] = lc
	}
	return idx
}

func joinPath(path []int32) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}

func appendPath(base []int32, more ...int32) []int32 {
	out := make([]int32, 0, len(base)+len(more))
	out = append(out, base...)
	out = append(out, more...)
	return out
}

// lookup returns the leading comment at path, preserving its original line
// structure: the descriptor stores it with a trailing newline and
// blank-line-separated paragraphs intact, so this only trims the one
// trailing newline protoc always appends.
func (idx commentIndex) lookup(path []int32) string {
	c, ok := idx[joinPath(path)]
	if !ok {
		return ""
	}
	return strings.TrimSuffix(c, "\n")
}
