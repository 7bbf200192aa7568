package main

import (
	"os"

	"pool-calc-backend/internal/cli"
)

func main() {
	if err := cli.NewPoolCalcCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
