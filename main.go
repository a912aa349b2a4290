package main

import (
	"os"

	"github.com/careerco/companion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
