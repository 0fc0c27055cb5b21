package main

import "github.com/analogrelay/optbridge/cmd"

func main() {
	cmd.Execute()
}
