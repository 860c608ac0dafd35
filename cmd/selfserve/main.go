package main

import (
	"os"

	"github.com/GenerateNU/selfserve/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
