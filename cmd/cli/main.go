package main

import (
	"fmt"
	"os"

	"github.com/provision-dev/provision/pkg/cli"
)

func main() {
	if err := cli.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
