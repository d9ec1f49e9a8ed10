package main

import (
	"os"

	"github.com/lazypower/tended/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
