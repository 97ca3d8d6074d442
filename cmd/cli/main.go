package main

import "movielogger/cmd/cli/command"

func main() {
	command.Execute()
}
