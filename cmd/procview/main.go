package main

import (
	"fmt"
	"os"

	"github.com/openspend/procview/internal/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
