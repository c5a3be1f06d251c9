package opts

import (
	"github.com/walteh/shiftrc/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string          // --config flag value
	Debug      bool            // --debug flag value
	Console    *log.Logger     // columned per-file progress output
	UserLogger *log.UserLogger // pterm user feedback
}
