// Command zecd runs the node.
package main

import (
	"fmt"
	"os"

	"github.com/zecd-io/zecd/cli/app"
)

func main() {
	ctl := app.New()
	if err := ctl.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
