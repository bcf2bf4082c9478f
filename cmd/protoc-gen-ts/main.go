// The protoc-gen-ts binary is a protoc plugin: it reads a serialized
// CodeGeneratorRequest from stdin and writes a serialized
// CodeGeneratorResponse containing TypeScript or JavaScript source to
// stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/protoscript-go/protoscript/internal/config"
	"github.com/protoscript-go/protoscript/internal/emit"
	"github.com/protoscript-go/protoscript/internal/walker"
)

const version = "protoc-gen-ts 0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "print the plugin version and exit")
	verbose := flag.Bool("verbose", false, "log descriptor emission order at V(2)")
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		return
	}
	if *verbose {
		// glog gates V(2) on its own "-v" flag rather than a boolean;
		// --verbose is a convenience that sets it without requiring the
		// caller to know glog's flag name.
		flag.Set("v", "2")
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		glog.Exitf("protoc-gen-ts: reading request: %v", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, req); err != nil {
		glog.Exitf("protoc-gen-ts: unmarshaling request: %v", err)
	}

	resp := run(req)

	out, err := proto.Marshal(resp)
	if err != nil {
		glog.Exitf("protoc-gen-ts: marshaling response: %v", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		glog.Exitf("protoc-gen-ts: writing response: %v", err)
	}
}

// run drives the plugin's framing loop: parse the parameter string, build
// the identifier table once across every file on the request, then walk
// and emit each file the compiler asked to generate, skipping well-known
// types unless the caller opted back in.
func run(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	paramOpts, err := config.ParseParameter(req.GetParameter())
	if err != nil {
		return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
	}
	cfg := config.Merge(config.Options{}, paramOpts)
	if cfg.Language == "" {
		cfg.Language = "typescript"
	}

	ctx, err := walker.NewContext(req.GetProtoFile())
	if err != nil {
		return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
	}

	filesByName := make(map[string]*descriptorpb.FileDescriptorProto, len(req.GetProtoFile()))
	for _, f := range req.GetProtoFile() {
		filesByName[f.GetName()] = f
	}

	generateKnownTypes := os.Getenv("GENERATE_KNOWN_TYPES") != ""

	resp := &pluginpb.CodeGeneratorResponse{}
	resp.SupportedFeatures = proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL))

	for _, name := range req.GetFileToGenerate() {
		if isWellKnownType(name) && !generateKnownTypes {
			glog.Warningf("protoc-gen-ts: skipping well-known type %s", name)
			continue
		}
		f, ok := filesByName[name]
		if !ok {
			return &pluginpb.CodeGeneratorResponse{Error: proto.String("protoc-gen-ts: no descriptor for " + name)}
		}

		glog.V(1).Infof("protoc-gen-ts: generating %s", name)
		wf, err := walker.BuildFile(ctx, f)
		if err != nil {
			return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
		}
		logEmissionOrder(name, wf)

		content, err := emit.File(name, wf, cfg, nil)
		if err != nil {
			return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
		}

		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(emit.OutputFilename(name, cfg)),
			Content: proto.String(string(content)),
		})
	}

	return resp
}

// logEmissionOrder records, at V(2), the exact descriptor order a file's
// top-level messages and enums will be emitted in, an operational aid for
// diagnosing emitter determinism in the field.
func logEmissionOrder(name string, wf *walker.File) {
	if !glog.V(2) {
		return
	}
	for _, m := range wf.Messages {
		glog.V(2).Infof("protoc-gen-ts: %s: message %s", name, m.NamespacedName())
	}
	for _, e := range wf.Enums {
		glog.V(2).Infof("protoc-gen-ts: %s: enum %s", name, e.NamespacedName())
	}
}

// isWellKnownType reports whether name is one of the standard
// google/protobuf/*.proto descriptors, excluded from generation by
// default.
func isWellKnownType(name string) bool {
	return strings.HasPrefix(name, "google/protobuf/")
}
