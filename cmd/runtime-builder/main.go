package main

import "runtime-builder/internal/cli"

func main() {
	cli.Execute()
}
