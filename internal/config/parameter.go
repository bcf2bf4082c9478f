package config

import (
	"fmt"
	"strings"
)

// ParseParameter parses the compiler's "k=v,k=v" parameter string into
// Options, the same loop shape as protogen.New's
// strings.Split(req.GetParameter(), ",") walk, generalized to this
// toolchain's own option set.
func ParseParameter(parameter string) (Options, error) {
	var opts Options
	if parameter == "" {
		return opts, nil
	}
	for _, param := range strings.Split(parameter, ",") {
		var value string
		if i := strings.Index(param, "="); i >= 0 {
			value = param[i+1:]
			param = param[0:i]
		}
		switch param {
		case "":
			// Ignore.
		case "root":
			opts.Root = value
		case "exclude":
			if value != "" {
				opts.Exclude = append(opts.Exclude, strings.Split(value, ";")...)
			}
		case "dest":
			opts.Dest = value
		case "language":
			switch value {
			case "typescript", "javascript":
				opts.Language = value
			default:
				return opts, fmt.Errorf("config: unknown language %q: want \"typescript\" or \"javascript\"", value)
			}
		case "json.emitFieldsWithDefaultValues":
			b, err := parseBool(param, value)
			if err != nil {
				return opts, err
			}
			opts.JSON.EmitFieldsWithDefaultValues = b
		case "json.useProtoFieldName":
			b, err := parseBool(param, value)
			if err != nil {
				return opts, err
			}
			opts.JSON.UseProtoFieldName = b
		case "typescript.emitDeclarationOnly":
			b, err := parseBool(param, value)
			if err != nil {
				return opts, err
			}
			opts.TypeScript.EmitDeclarationOnly = b
		default:
			return opts, fmt.Errorf("config: unrecognized parameter %q", param)
		}
	}
	return opts, nil
}

func parseBool(param, value string) (bool, error) {
	switch value {
	case "true", "":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("config: bad value for parameter %q: want \"true\" or \"false\"", param)
	}
}
