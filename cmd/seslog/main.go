// seslog is a terminal viewer for structured session-log files.
package main

import (
	"fmt"
	"os"

	"github.com/wethinkt/seslog/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
