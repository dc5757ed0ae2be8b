package main

import "github.com/ariagrep/ariagrep/cmd"

func main() {
	cmd.Execute()
}
