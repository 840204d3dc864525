package main

import (
	"github.com/mangestic/ctfctl/internal/cli"
)

func main() {
	cli.Execute()
}
