// Command ledgerctl runs operator tasks against the shop ledger: schema
// migrations, the demo seed, summary reports and receipt export.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(defaultOptions()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
