package main

import (
	"os"

	"disciplina/cmd/disciplina-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
