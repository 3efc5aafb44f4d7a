package main

import (
	"fmt"
	"runtime"
)

const version = "2.0"

// versionString includes the platform, useful when submitting an issue.
func versionString() string {
	return fmt.Sprintf("trytravis %s (%s %s, %s)", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
