// Command logdemo initializes the logging facade from flags, STREAMLOG_*
// environment variables or a config file and writes a few sample records.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
