package main

import (
	"fmt"
	"os"

	"github.com/tessellated-io/foresight/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
