package main

import (
	"os"

	"github.com/purpose-first/plans-as-code/internal/pkg/cli/cmd"
	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
)

func main() {
	root := cmd.NewRootCommand(os.Stdout, os.Stderr, filesystem.NewLocalFs)
	os.Exit(root.Execute())
}
