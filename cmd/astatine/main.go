// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program astatine reports on the syntax of Python source files.
//
// Usage:
//
//	astatine <command> [flags] <file>...
//
// Use "astatine help" for a list of commands. A file named "-" is read from
// standard input.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
