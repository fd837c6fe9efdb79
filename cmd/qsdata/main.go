package main

import (
	"os"

	"github.com/asaidimu/go-qsdata/cmd/qsdata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
