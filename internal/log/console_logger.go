package log

import (
	"fmt"
	"log"
	"os"
)

// ConsoleLogger represents the log interface
type ConsoleLogger log.Logger

func NewConsoleLogger() *ConsoleLogger {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
	return (*ConsoleLogger)(logger)
}

func (c *ConsoleLogger) Info(format string, args ...any) {
	_ = (*log.Logger)(c).Output(2, fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) Error(format string, args ...any) {
	_ = (*log.Logger)(c).Output(2, fmt.Sprintf(format, args...))
}

func (c *ConsoleLogger) Fatal(format string, args ...any) {
	_ = (*log.Logger)(c).Output(2, fmt.Sprintf(format, args...))
	os.Exit(1)
}
