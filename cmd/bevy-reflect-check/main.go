package main

import "github.com/anlumo/bevy-reflect-check/internal/cli"

func main() {
	cli.Execute()
}
