// Package main provides the nextplace command-line tool.
package main

import "os"

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}
