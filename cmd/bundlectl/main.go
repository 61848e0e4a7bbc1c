// Command bundlectl is the operator tool of a bundle node: it manages
// identities and routes, issues admin tokens, and inspects bundle files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
