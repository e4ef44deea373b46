package main

import (
	"fmt"
	"os"

	"github.com/leonardo-lacerda-data/nuclea-fidics/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fidics:", err)
		os.Exit(1)
	}
}
