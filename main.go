package main

import "github.com/beardo/toggl-tui/cmd"

func main() {
	cmd.Execute()
}
