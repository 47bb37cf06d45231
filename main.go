package main

import "thoreinstein.com/tai/cmd"

func main() {
	cmd.Execute()
}
