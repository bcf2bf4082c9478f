package emit

import (
	"strings"

	"github.com/protoscript-go/protoscript/internal/ir"
)

// emitBinaryCodec writes initialize/encode/decode for one message,
// recursing into its non-map children first. Map-entry messages never
// receive their own codec: they are written inline by the field that owns
// them, via an associative-to-repeated-entry conversion.
func emitBinaryCodec(b *sourceBuilder, m *ir.Message, cfg Config) {
	for _, child := range m.Children {
		if cm, ok := child.(*ir.Message); ok && !cm.IsMap {
			emitBinaryCodec(b, cm, cfg)
		}
	}
	if m.IsMap {
		return
	}

	emitInitialize(b, m, cfg)
	emitEncode(b, m, cfg)
	emitDecode(b, m, cfg)
}

func emitInitialize(b *sourceBuilder, m *ir.Message, cfg Config) {
	ret := m.Name()
	if isTypeScript(cfg) {
		b.P("export function initialize", m.Name(), "(): ", ret, " {")
	} else {
		b.P("export function initialize", m.Name(), "() {")
	}
	b.In()
	b.P("return {")
	b.In()
	for _, f := range m.Fields {
		b.P(f.Name, ": ", fieldZeroValue(f), ",")
	}
	b.Out()
	b.P("};")
	b.Out()
	b.P("}")
}

func fieldZeroValue(f *ir.Field) string {
	if f.Map {
		return "{}"
	}
	if f.Repeated {
		return "[]"
	}
	if f.MessageType != nil {
		return "initialize" + f.MessageType.Name() + "()"
	}
	return f.DefaultValue
}

func emitEncode(b *sourceBuilder, m *ir.Message, cfg Config) {
	if isTypeScript(cfg) {
		b.P("export function encode", m.Name(), "(m: ", m.Name(), ", w: Writer = new Writer()): Writer {")
	} else {
		b.P("export function encode", m.Name(), "(m, w = new Writer()) {")
	}
	b.In()
	for _, f := range m.Fields {
		emitEncodeField(b, f)
	}
	b.P("return w;")
	b.Out()
	b.P("}")
}

func emitEncodeField(b *sourceBuilder, f *ir.Field) {
	ref := "m." + f.Name

	switch {
	case f.Map:
		b.P("for (const k of Object.keys(", ref, ")) {")
		b.In()
		b.P("w.writeMessage(", f.Index, ", (w) => {")
		b.In()
		b.P("w.writeString(1, k);")
		valueRef := "(" + ref + " as any)[k]"
		writeScalarOrRef(b, f.MessageType.ValueField(), valueRef, 2)
		b.Out()
		b.P("});")
		b.Out()
		b.P("}")
	case f.Repeated && f.ReadPacked != "":
		packedRef := ref
		if f.EnumType != nil {
			packedRef = ref + ".map(" + f.EnumType.Name() + "ToInt)"
		}
		b.P("w.writePacked", strings.TrimPrefix(f.Write, "write"), "(", f.Index, ", ", packedRef, ");")
	case f.Repeated:
		b.P("for (const v of ", ref, ") {")
		b.In()
		writeScalarOrRef(b, f, "v", int(f.Index))
		b.Out()
		b.P("}")
	case f.Optional:
		b.P("if (", ref, " !== undefined) {")
		b.In()
		writeScalarOrRef(b, f, ref, int(f.Index))
		b.Out()
		b.P("}")
	default:
		writeScalarOrRef(b, f, ref, int(f.Index))
	}
}

func writeScalarOrRef(b *sourceBuilder, f *ir.Field, valueExpr string, index int) {
	switch {
	case f.MessageType != nil:
		b.P("w.writeMessage(", index, ", (w) => encode", f.MessageType.Name(), "(", valueExpr, ", w));")
	case f.EnumType != nil:
		b.P("w.writeEnum(", index, ", ", f.EnumType.Name(), "ToInt(", valueExpr, "));")
	default:
		b.P("w.", f.Write, "(", index, ", ", valueExpr, ");")
	}
}

func emitDecode(b *sourceBuilder, m *ir.Message, cfg Config) {
	if isTypeScript(cfg) {
		b.P("export function decode", m.Name(), "(d: Decoder): ", m.Name(), " {")
	} else {
		b.P("export function decode", m.Name(), "(d) {")
	}
	b.In()
	b.P("const m = initialize", m.Name(), "();")
	b.P("while (!d.atEnd()) {")
	b.In()
	b.P("const [num, wt] = d.readTag();")
	b.P("switch (num) {")
	b.In()
	for _, f := range m.Fields {
		emitDecodeField(b, f)
	}
	b.P("default:")
	b.In()
	b.P("d.skipField(wt);")
	b.Out()
	b.Out()
	b.P("}")
	b.Out()
	b.P("}")
	b.P("return m;")
	b.Out()
	b.P("}")
}

func emitDecodeField(b *sourceBuilder, f *ir.Field) {
	b.P("case ", f.Index, ":")
	b.In()

	switch {
	case f.Map:
		b.P("{")
		b.In()
		b.P("const entry = d.readMessage(() => {")
		b.In()
		b.P("let k = \"\", v = ", fieldZeroValue(f.MessageType.ValueField()), ";")
		b.P("while (!d.atEnd()) {")
		b.In()
		b.P("const [n] = d.readTag();")
		b.P("if (n === 1) k = d.readString();")
		readValueInto(b, f.MessageType.ValueField(), "v")
		b.Out()
		b.P("}")
		b.P("return { k, v };")
		b.Out()
		b.P("});")
		b.P("(m.", f.Name, " as any)[entry.k] = entry.v;")
		b.Out()
		b.P("break;")
		b.Out()
		b.P("}")
	case f.Repeated && f.ReadPacked != "":
		b.P("m.", f.Name, ".push(...d.", f.ReadPacked, "(wt, () => ", readExpr(f), "));")
		b.P("break;")
	case f.Repeated:
		b.P("m.", f.Name, ".push(", readExpr(f), ");")
		b.P("break;")
	default:
		b.P("m.", f.Name, " = ", readExpr(f), ";")
		b.P("break;")
	}
	b.Out()
}

func readValueInto(b *sourceBuilder, vf *ir.Field, target string) {
	b.P("else if (n === 2) ", target, " = ", readExpr(vf), ";")
}

func readExpr(f *ir.Field) string {
	switch {
	case f.MessageType != nil:
		return "d.readMessage(() => decode" + f.MessageType.Name() + "(d))"
	case f.EnumType != nil:
		return f.EnumType.Name() + "FromInt(d.readEnum())"
	default:
		return "d." + f.Read + "()"
	}
}
