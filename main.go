// main - main entry-point to restpipe commands through cobra
// individual commands are outlined in ./cmd/
package main

import (
	"github.com/brave-intl/restpipe/cmd"
	"github.com/brave-intl/restpipe/libs/logging"

	// pull in accounts service
	_ "github.com/brave-intl/restpipe/services/accounts/cmd"
)

var (
	// variables will be overwritten at build time
	version   string
	commit    string
	buildTime string
)

func main() {
	defer func() {
		if logging.Writer != nil {
			logging.Writer.Close()
		}
	}()
	cmd.Execute(version, commit, buildTime)
}
