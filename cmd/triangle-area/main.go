package main

import "github.com/aalvaropc/heron/internal/cli"

func main() {
	cli.Execute()
}
