package main

import (
	"github.com/plinkolabs/plinko/internal/cli"
)

func main() {
	cli.Execute()
}
