package main

import (
	"os"

	_ "time/tzdata"

	_ "tasktracker/docs"
)

// @title           Task Tracker API
// @version         1.0
// @description     Personal task tracking: tasks with status, priority and a daily start time.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
