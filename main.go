package main

import "vulntriage/cmd"

func main() {
	cmd.Execute()
}
