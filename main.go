package main

import (
	"os"

	"beacon-attendance/core/logger"
	"beacon-attendance/core/server"
)

// @title Beacon Attendance API
// @version 1.0
// @description Meeting scheduling and BLE beacon attendance tracking

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
		os.Exit(1)
	}
}
