// Command chartctl runs chart generation from the terminal without the
// HTTP service or any store.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
