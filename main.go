package main

import "github.com/itsmostafa/texsplit/cmd"

func main() {
	cmd.Execute()
}
