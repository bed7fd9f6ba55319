// solvencyctl runs the solvency analysis from the command line.
//
// Usage:
//
//	solvencyctl analyze --income=5000 --expenses=3000 --debt=10000 --cash=20000
//	solvencyctl analyze --document=statement.png --diagnose --json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
