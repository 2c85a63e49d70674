package main

import (
	"fmt"
	"io"

	"sparklebot/pkg/version"
)

// printVersion prints the version information
func printVersion(w io.Writer) {
	fmt.Fprint(w, version.Info())
}
