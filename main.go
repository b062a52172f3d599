package main

import "github.com/sakuffo/event-automation/cmd"

func main() {
	cmd.Execute()
}
