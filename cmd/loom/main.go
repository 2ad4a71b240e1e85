package main

import (
	"loom/cmd/cmd"
	"loom/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	cmd.Execute()
}
