// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package main is the entry point for the issue-duplicator CLI.
package main

import (
	"github.com/similigh/issue-duplicator/cmd/duplicator/commands"
)

func main() {
	commands.Execute()
}
