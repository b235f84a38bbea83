// Package main is the entry point for the skillsearch CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. skillsearch filters CSV and xlsx exports
// by ID and Code Mapping Skill.
package main

import "github.com/ajxudir/skillsearch/cmd"

func main() {
	cmd.Execute()
}
