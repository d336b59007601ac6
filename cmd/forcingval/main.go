package main

import (
	"github.com/climforge/forcingval/internal/cli"
)

func main() {
	cli.Execute()
}
