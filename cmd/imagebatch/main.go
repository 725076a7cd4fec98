// Command imagebatch serves the batch image optimizer and inspects its
// output store.
//
//	imagebatch serve
//	imagebatch sessions
//	imagebatch bundle --session optimize_1718000000_0a1b2c3d4e5f -o out.zip
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
