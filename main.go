package main

import "github.com/Shy5ta/studentSuite/cmd"

func main() {
	cmd.Execute()
}
