// Package main implements the str8 command, a small driver for the str8
// string library.
package main

import (
	"os"
)

var version = "dev"

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}
