// Package main is the entry point for the gitgrade CLI.
package main

import "github.com/naka-gawa/gitgrade/cmd"

func main() {
	cmd.Execute()
}
