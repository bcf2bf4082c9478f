package emit

import "github.com/protoscript-go/protoscript/internal/config"

// Config is the emitter's view of the merged configuration. It is the
// same shape as config.Options; kept as a distinct name in this package
// so Plugin.Contribute's signature reads as emitter vocabulary rather
// than reaching into the config package directly.
type Config = config.Options

// runtimeModule is the module specifier generated code imports its wire
// codec runtime from. The runtime itself is a separate, self-contained
// dependency: the emitted code calls into it, but this generator does
// not implement it — it only needs a stable name to print.
const runtimeModule = "protoscript-runtime"

func isTypeScript(cfg Config) bool { return cfg.Language != "javascript" }
