package main

import "github.com/philipparndt/stlview/cmd"

func main() {
	cmd.Execute()
}
