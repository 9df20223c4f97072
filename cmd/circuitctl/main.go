// Command circuitctl drives the circuit backend from a terminal: sign in
// once, then list and add members, finances, announcements and files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).Execute(); err != nil {
		os.Exit(1) //nolint:forbidigo // CLI must propagate command failure to the shell.
	}
}
