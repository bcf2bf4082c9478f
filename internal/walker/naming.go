package walker

import "strings"

// lowerCamelCase implements the proto3 JSON name derivation: each
// underscore is dropped and the following letter upper-cased; every other
// character, including the first, is kept as written. This also produces the
// generated-code field attribute name, which is lower-camel of the proto
// field name.
func lowerCamelCase(s string) string {
	var b []byte
	upperNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && isASCIILower(c) {
			c -= 'a' - 'A'
		}
		upperNext = false
		b = append(b, c)
	}
	return string(b)
}

func isASCIILower(c byte) bool { return 'a' <= c && c <= 'z' }

// namespacedName builds the dotted identifier chain the emitter uses to
// reference a nested IR node from a sibling scope. parent is "" for a
// top-level node.
func namespacedName(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// fullyQualifiedName builds the proto "." + pkg + "." + name form that
// appears as a FieldDescriptorProto.type_name and as the identifier
// table's key.
func fullyQualifiedName(pkg string, path []string) string {
	fq := "." + pkg
	for _, p := range path {
		fq += "." + p
	}
	if pkg == "" {
		return "." + strings.Join(path, ".")
	}
	return fq
}
