// Package main provides the entry point for the cfind CLI tool.
//
// cfind searches directory trees for entries matching a find-style
// expression and prints, lists or deletes them.
//
// Usage:
//
//	cfind [PATH...] [EXPRESSION]
//
// Examples:
//
//	cfind . -name '*.log' -mtime +30
//	cfind /var/tmp -maxdepth 1 -type f -size +100M -ls
//	cfind build -type d -name cache -o -name '*.tmp' -print0
//
// Run cfind --help for the list of tests, operators and actions.
package main

import (
	"os"

	"github.com/otuschhoff/cfind/cmd/cfind/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
