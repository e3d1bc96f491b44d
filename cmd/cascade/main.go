package main

import "github.com/edp1096/toy-cascade/cmd/cascade/cmd"

func main() {
	cmd.Execute()
}
