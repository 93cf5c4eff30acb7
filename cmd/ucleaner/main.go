package main

import (
	"os"

	"github.com/Easy-Cloud-in/ubuntu-cleaner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
