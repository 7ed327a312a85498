package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/validador-cpe/internal/cli"
)

func main() {
	if err := cli.NewValidadorCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
