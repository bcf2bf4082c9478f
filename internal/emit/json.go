package emit

import "github.com/protoscript-go/protoscript/internal/ir"

// emitJSONCodec writes encodeJSON/decodeJSON for one message, mirroring
// emitBinaryCodec's surface but suffixed JSON: canonical proto3 JSON
// mapping, lower-camel keys by default, 64-bit values as decimal strings
// at this boundary only.
func emitJSONCodec(b *sourceBuilder, m *ir.Message, cfg Config) {
	for _, child := range m.Children {
		if cm, ok := child.(*ir.Message); ok && !cm.IsMap {
			emitJSONCodec(b, cm, cfg)
		}
	}
	if m.IsMap {
		return
	}

	emitEncodeJSON(b, m, cfg)
	emitDecodeJSON(b, m, cfg)
}

// emitEncodeJSON writes the public, string-producing encode<M>JSON wrapper
// plus the internal _write<M>JSON object-level helper it calls: encode
// produces a JSON string, _write returns a plain attribute map.
func emitEncodeJSON(b *sourceBuilder, m *ir.Message, cfg Config) {
	ret := m.Name() + "JSON"
	if isTypeScript(cfg) {
		b.P("export function encode", m.Name(), "JSON(m: ", m.Name(), "): string {")
	} else {
		b.P("export function encode", m.Name(), "JSON(m) {")
	}
	b.In()
	b.P("return JSON.stringify(_write", m.Name(), "JSON(m));")
	b.Out()
	b.P("}")

	if isTypeScript(cfg) {
		b.P("function _write", m.Name(), "JSON(m: ", m.Name(), "): ", ret, " {")
	} else {
		b.P("function _write", m.Name(), "JSON(m) {")
	}
	b.In()
	b.P("const out: any = {};")
	for _, f := range m.Fields {
		emitEncodeJSONField(b, f, cfg)
	}
	b.P("return out;")
	b.Out()
	b.P("}")
}

func emitEncodeJSONField(b *sourceBuilder, f *ir.Field, cfg Config) {
	key := jsonNameFor(f, cfg)
	ref := "m." + f.Name
	omit := !cfg.JSON.EmitFieldsWithDefaultValues && !f.Repeated && !f.Map && f.MessageType == nil

	guard := func(body func()) {
		if omit {
			b.P("if (", ref, " !== ", f.DefaultValue, ") {")
			b.In()
			body()
			b.Out()
			b.P("}")
			return
		}
		body()
	}

	switch {
	case f.Map:
		b.P("out[\"", key, "\"] = Object.fromEntries(Object.entries(", ref, ").map(([k, v]) => [k, ", jsonValueExpr(f.MessageType.ValueField(), "v"), "]));")
	case f.Repeated:
		b.P("out[\"", key, "\"] = ", ref, ".map((v: any) => ", jsonValueExpr(elementField(f), "v"), ");")
	default:
		guard(func() {
			b.P("out[\"", key, "\"] = ", jsonValueExpr(f, ref), ";")
		})
	}
}

// elementField views a repeated field as its element type for the purpose
// of building a per-element JSON conversion expression.
func elementField(f *ir.Field) *ir.Field {
	return &ir.Field{MessageType: f.MessageType, EnumType: f.EnumType, Read: f.Read}
}

func jsonValueExpr(f *ir.Field, ref string) string {
	switch {
	case f.MessageType != nil:
		return "_write" + f.MessageType.Name() + "JSON(" + ref + ")"
	case f.EnumType != nil:
		return ref
	case f.Read == "readInt64" || f.Read == "readUint64" || f.Read == "readSint64" || f.Read == "readFixed64" || f.Read == "readSfixed64":
		return ref + ".toString()"
	case f.Read == "readBytes":
		return "encodeBytesBase64(" + ref + ")"
	default:
		return ref
	}
}

// emitDecodeJSON mirrors emitEncodeJSON: the public decode<M>JSON parses a
// JSON string via JSON.parse and hands the resulting object to the
// internal, object-consuming _read<M>JSON helper.
func emitDecodeJSON(b *sourceBuilder, m *ir.Message, cfg Config) {
	ret := m.Name()
	if isTypeScript(cfg) {
		b.P("export function decode", m.Name(), "JSON(s: string): ", ret, " {")
	} else {
		b.P("export function decode", m.Name(), "JSON(s) {")
	}
	b.In()
	b.P("return _read", m.Name(), "JSON(JSON.parse(s));")
	b.Out()
	b.P("}")

	if isTypeScript(cfg) {
		b.P("function _read", m.Name(), "JSON(j: ", m.Name(), "JSON): ", ret, " {")
	} else {
		b.P("function _read", m.Name(), "JSON(j) {")
	}
	b.In()
	b.P("const m = initialize", m.Name(), "();")
	for _, f := range m.Fields {
		emitDecodeJSONField(b, f, cfg)
	}
	b.P("return m;")
	b.Out()
	b.P("}")
}

func emitDecodeJSONField(b *sourceBuilder, f *ir.Field, cfg Config) {
	key := jsonNameFor(f, cfg)
	fallback := f.JSONName
	jexpr := "(j[\"" + key + "\"] ?? j[\"" + fallback + "\"] ?? j[\"" + f.ProtoName + "\"])"

	switch {
	case f.Map:
		b.P("if (", jexpr, " !== undefined) {")
		b.In()
		b.P("for (const [k, v] of Object.entries(", jexpr, ")) {")
		b.In()
		b.P("(m.", f.Name, " as any)[k] = ", jsonParseExpr(f.MessageType.ValueField(), "v"), ";")
		b.Out()
		b.P("}")
		b.Out()
		b.P("}")
	case f.Repeated:
		b.P("if (", jexpr, " !== undefined) {")
		b.In()
		b.P("m.", f.Name, " = ", jexpr, ".map((v: any) => ", jsonParseExpr(elementField(f), "v"), ");")
		b.Out()
		b.P("}")
	default:
		b.P("if (", jexpr, " !== undefined) {")
		b.In()
		b.P("m.", f.Name, " = ", jsonParseExpr(f, jexpr), ";")
		b.Out()
		b.P("}")
	}
}

func jsonParseExpr(f *ir.Field, ref string) string {
	switch {
	case f.MessageType != nil:
		return "_read" + f.MessageType.Name() + "JSON(" + ref + ")"
	case f.EnumType != nil:
		return ref
	case f.Read == "readInt64" || f.Read == "readUint64" || f.Read == "readSint64" || f.Read == "readFixed64" || f.Read == "readSfixed64":
		return "BigInt(" + ref + ")"
	case f.Read == "readBytes":
		return "decodeBytesBase64(" + ref + ")"
	default:
		return ref
	}
}
