package main

import "github.com/cachopreto/webdev-semester-team1/cmd"

func main() {
	cmd.Execute()
}
