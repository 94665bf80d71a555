package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/prophagestat/logger"
)

var VERSION = "0.1.0"

func main() {
	// Establish logger, replaced once the config level is known
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Command failed", zap.Error(err))
	}
}
