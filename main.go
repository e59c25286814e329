package main

import (
	"os"

	"toutouchic-api/core/logger"
	"toutouchic-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("Main:Run:Error", "error", err)
		os.Exit(1)
	}
}
