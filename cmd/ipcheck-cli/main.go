package main

import "github.com/TomasB/ipcheck/internal/cli"

func main() {
	cli.Execute()
}
