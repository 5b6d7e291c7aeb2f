package main

import "launcher-agent/cmd"

func main() {
	cmd.Execute()
}
