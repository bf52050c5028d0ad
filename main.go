package main

import (
	"os"

	"github.com/xlttj/pypisrc/pkg/cmd"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(cmd.Execute(version))
}
