package main

import "github.com/minicfd/gocfd1d/cmd"

func main() {
	cmd.Execute()
}
