// Package walker turns a flat FileDescriptorProto into the ir package's
// tree of Message/Enum nodes, resolving cross-file and cross-message type
// references against an identifier table built by a prior full scan of
// the request.
//
// Building happens in two passes. Pass one (NewContext) walks every file
// and declares a skeleton IR node for every message and enum, binding it
// into the Table immediately, so that pass two (BuildFile) can resolve a
// field's type_name to a real node no matter whether that type is
// declared earlier or later in the request. Enums are fully built in pass
// one, since they never reference another type; messages are filled in
// during pass two, once their own nested children have been filled.
package walker

import (
	"fmt"

	descriptorpb "google.golang.org/protobuf/types/descriptorpb"

	"github.com/protoscript-go/protoscript/internal/ir"
)

// declared is what pass one records for each message/enum before its
// fields (if a message) are filled in, so pass two can find it again by
// fully-qualified proto name.
type declared struct {
	filename string
	msgDesc  *descriptorpb.DescriptorProto
	isMap    bool
	filled   bool
}

// Context holds the state shared across an entire CodeGeneratorRequest:
// the identifier table and the bookkeeping pass one recorded for each
// declared name. It is built once per request; BuildFile fills in the
// skeleton nodes and marks each filled message in this bookkeeping, but
// never changes the Table's entries.
type Context struct {
	Table    *Table
	declared map[string]*declared // fully-qualified proto name -> bookkeeping
}

// NewContext runs pass one: it enumerates every message and enum (nested
// or not) across all files in the request, builds a skeleton IR node for
// each, and binds it into the identifier table under its fully-qualified
// proto name, enabling cross-file type reference resolution.
func NewContext(files []*descriptorpb.FileDescriptorProto) (*Context, error) {
	c := &Context{
		Table:    NewTable(),
		declared: make(map[string]*declared),
	}
	for _, f := range files {
		idx := buildCommentIndex(f)
		pkg := f.GetPackage()
		for i, m := range f.GetMessageType() {
			if err := c.declareMessage(f, idx, pkg, m, []string{m.GetName()}, []int32{fileMessagePath, int32(i)}); err != nil {
				return nil, err
			}
		}
		for i, e := range f.GetEnumType() {
			if err := c.declareEnum(f, idx, pkg, e, []string{e.GetName()}, []int32{fileEnumPath, int32(i)}); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (c *Context) declareMessage(f *descriptorpb.FileDescriptorProto, idx commentIndex, pkg string, m *descriptorpb.DescriptorProto, namePath []string, srcPath []int32) error {
	fq := fullyQualifiedName(pkg, namePath)
	namespaced := joinNames(namePath[:len(namePath)-1])
	skeleton := &ir.Message{
		NameStr:     m.GetName(),
		Namespaced:  namespacedName(namespaced, m.GetName()),
		CommentsVal: ir.Comments{Leading: idx.lookup(srcPath)},
		IsMap:       m.GetOptions().GetMapEntry(),
	}
	c.declared[fq] = &declared{filename: f.GetName(), msgDesc: m, isMap: skeleton.IsMap}
	c.Table.Declare(fq, f.GetName(), namePath)
	c.Table.Bind(fq, skeleton)

	for i, nested := range m.GetNestedType() {
		childPath := append(append([]string{}, namePath...), nested.GetName())
		if err := c.declareMessage(f, idx, pkg, nested, childPath, appendPath(srcPath, messageNestedPath, int32(i))); err != nil {
			return err
		}
	}
	for i, e := range m.GetEnumType() {
		childPath := append(append([]string{}, namePath...), e.GetName())
		if err := c.declareEnum(f, idx, pkg, e, childPath, appendPath(srcPath, messageEnumPath, int32(i))); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) declareEnum(f *descriptorpb.FileDescriptorProto, idx commentIndex, pkg string, e *descriptorpb.EnumDescriptorProto, namePath []string, srcPath []int32) error {
	fq := fullyQualifiedName(pkg, namePath)
	namespaced := joinNames(namePath[:len(namePath)-1])
	en := &ir.Enum{
		NameStr:     e.GetName(),
		Namespaced:  namespacedName(namespaced, e.GetName()),
		CommentsVal: ir.Comments{Leading: idx.lookup(srcPath)},
	}
	hasZero := false
	for _, v := range e.GetValue() {
		en.Values = append(en.Values, ir.EnumValue{Name: v.GetName(), Number: v.GetNumber()})
		if v.GetNumber() == 0 {
			hasZero = true
		}
	}
	if !hasZero {
		return newError(EnumNoZero, f.GetName(), en.Namespaced, "", "")
	}
	c.declared[fq] = &declared{filename: f.GetName(), filled: true}
	c.Table.Declare(fq, f.GetName(), namePath)
	c.Table.Bind(fq, en)
	return nil
}

func joinNames(path []string) string {
	out := ""
	for i, p := range path {
		if i == 0 {
			out = p
		} else {
			out += "." + p
		}
	}
	return out
}

// File is the result of walking one FileDescriptorProto: its top-level IR
// nodes in descriptor order, and the set of other files it must import
// from.
type File struct {
	Messages []*ir.Message
	Enums    []*ir.Enum
	Imports  []string // filenames, deduplicated, in first-referenced order
}

// fileBuilder carries the per-file state BuildFile threads through
// recursive descent: the running set of import filenames, reset at file
// entry.
type fileBuilder struct {
	ctx     *Context
	file    *descriptorpb.FileDescriptorProto
	imports map[string]bool
	order   []string
}

// BuildFile runs pass two for a single file: it locates the skeleton
// nodes pass one built for this file's top-level messages and enums, fills
// in each message's fields and nested children, and returns the completed
// tree along with the set of other files it references.
func BuildFile(ctx *Context, f *descriptorpb.FileDescriptorProto) (*File, error) {
	fb := &fileBuilder{ctx: ctx, file: f, imports: make(map[string]bool)}
	pkg := f.GetPackage()

	out := &File{}
	for _, m := range f.GetMessageType() {
		fq := fullyQualifiedName(pkg, []string{m.GetName()})
		entry, _ := ctx.Table.Lookup(fq)
		msg := entry.Node.(*ir.Message)
		if err := fb.fillMessage(fq, msg); err != nil {
			return nil, err
		}
		out.Messages = append(out.Messages, msg)
	}
	for _, e := range f.GetEnumType() {
		fq := fullyQualifiedName(pkg, []string{e.GetName()})
		entry, _ := ctx.Table.Lookup(fq)
		out.Enums = append(out.Enums, entry.Node.(*ir.Enum))
	}
	out.Imports = fb.order
	return out, nil
}

func (fb *fileBuilder) addImport(filename string) {
	if filename == "" || filename == fb.file.GetName() || fb.imports[filename] {
		return
	}
	fb.imports[filename] = true
	fb.order = append(fb.order, filename)
}

// fillMessage populates msg's Children and Fields in place, using the
// descriptor stashed in the context's bookkeeping map under fq. Children
// are filled first so that any map-entry nested type (which always
// belongs to the same message as the field that uses it) is already
// complete by the time this message's own fields are built.
func (fb *fileBuilder) fillMessage(fq string, msg *ir.Message) error {
	d, ok := fb.ctx.declared[fq]
	if !ok || d.filled {
		return nil
	}
	d.filled = true
	m := d.msgDesc

	for _, nested := range m.GetNestedType() {
		childFQ := fq + "." + nested.GetName()
		entry, _ := fb.ctx.Table.Lookup(childFQ)
		child := entry.Node.(*ir.Message)
		if err := fb.fillMessage(childFQ, child); err != nil {
			return err
		}
		msg.Children = append(msg.Children, child)
	}
	for _, e := range m.GetEnumType() {
		childFQ := fq + "." + e.GetName()
		entry, _ := fb.ctx.Table.Lookup(childFQ)
		msg.Children = append(msg.Children, entry.Node.(*ir.Enum))
	}

	seenNumbers := make(map[int32]bool)
	for _, fd := range m.GetField() {
		if seenNumbers[fd.GetNumber()] {
			return newError(DuplicateField, fb.file.GetName(), msg.Namespaced, fd.GetName(), fmt.Sprintf("field number %d reused", fd.GetNumber()))
		}
		seenNumbers[fd.GetNumber()] = true

		field, err := fb.buildField(fd, msg.Namespaced)
		if err != nil {
			return err
		}
		msg.Fields = append(msg.Fields, field)
	}
	return nil
}

// buildField classifies one field: scalar vs message/enum,
// repeated/optional/map exclusivity, read/write tags, and the
// JSON/default-value metadata.
func (fb *fileBuilder) buildField(fd *descriptorpb.FieldDescriptorProto, messageNamespaced string) (*ir.Field, error) {
	field := &ir.Field{
		Name:      lowerCamelCase(fd.GetName()),
		ProtoName: fd.GetName(),
		JSONName:  jsonNameOf(fd),
		Index:     fd.GetNumber(),
		Optional:  fd.GetProto3Optional(),
	}

	isRepeatedLabel := fd.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED

	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		if fd.GetType() == descriptorpb.FieldDescriptorProto_TYPE_GROUP {
			return nil, newError(UnsupportedType, fb.file.GetName(), messageNamespaced, fd.GetName(), "proto2 group wire type is out of scope")
		}
		entry, ok := fb.ctx.Table.Lookup(fd.GetTypeName())
		if !ok {
			return nil, newError(MissingType, fb.file.GetName(), messageNamespaced, fd.GetName(), fd.GetTypeName())
		}
		fb.addImport(entry.Filename)
		target := entry.Node.(*ir.Message)
		d := fb.ctx.declared[fd.GetTypeName()]

		if d != nil && d.isMap {
			if !isRepeatedLabel {
				return nil, newError(InvalidFieldCombination, fb.file.GetName(), messageNamespaced, fd.GetName(), "map field must be repeated at wire level")
			}
			field.Map = true
			field.MessageType = target
			field.Read, field.Write = "readMessage", "writeMessage"
			field.TSType = "Record<string, " + target.ValueField().TSType + ">"
			field.TSTypeJSON = "Record<string, " + target.ValueField().TSTypeJSON + ">"
		} else {
			field.Repeated = isRepeatedLabel
			field.MessageType = target
			field.Read, field.Write = "readMessage", "writeMessage"
			field.TSType = target.Namespaced
			field.TSTypeJSON = target.Namespaced
			if field.Repeated {
				field.TSType += "[]"
				field.TSTypeJSON += "[]"
			}
		}

	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		entry, ok := fb.ctx.Table.Lookup(fd.GetTypeName())
		if !ok {
			return nil, newError(MissingType, fb.file.GetName(), messageNamespaced, fd.GetName(), fd.GetTypeName())
		}
		fb.addImport(entry.Filename)
		resolvedEnum := entry.Node.(*ir.Enum)
		field.EnumType = resolvedEnum
		field.Repeated = isRepeatedLabel
		field.Read, field.Write = "readEnum", "writeEnum"
		if field.Repeated {
			field.ReadPacked = "readPacked"
		}
		field.TSType = resolvedEnum.Namespaced
		field.TSTypeJSON = resolvedEnum.Namespaced
		if field.Repeated {
			field.TSType += "[]"
			field.TSTypeJSON += "[]"
		}
		field.DefaultValue = `"` + resolvedEnum.ZeroValueName() + `"`

	default:
		tag, ok := scalarTags[fd.GetType()]
		if !ok {
			return nil, newError(UnsupportedType, fb.file.GetName(), messageNamespaced, fd.GetName(), fd.GetType().String())
		}
		field.Repeated = isRepeatedLabel
		field.Read, field.Write = tag.read, tag.write
		field.TSType, field.TSTypeJSON = tag.tsType, tag.tsTypeJSON
		field.DefaultValue = tag.zeroLiteral
		if field.Repeated {
			if readPacked, ok := packedReadTag(fd.GetType()); ok {
				field.ReadPacked = readPacked
			}
			field.TSType += "[]"
			field.TSTypeJSON += "[]"
			field.DefaultValue = ""
		}
	}

	if err := validateExclusivity(fb.file.GetName(), messageNamespaced, field); err != nil {
		return nil, err
	}
	return field, nil
}

func validateExclusivity(file, message string, f *ir.Field) error {
	count := 0
	if f.Repeated {
		count++
	}
	if f.Map {
		count++
	}
	if f.Optional {
		count++
	}
	if count > 1 {
		return newError(InvalidFieldCombination, file, message, f.ProtoName, "repeated/map/optional are mutually exclusive")
	}
	return nil
}

// jsonNameOf returns the descriptor's json_name if the compiler populated
// one, otherwise the lower-camel default.
func jsonNameOf(fd *descriptorpb.FieldDescriptorProto) string {
	if fd.GetJsonName() != "" {
		return fd.GetJsonName()
	}
	return lowerCamelCase(fd.GetName())
}
