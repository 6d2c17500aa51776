package main

import (
	"appointments-api/core/logger"
	"appointments-api/core/server"
)

// @title Appointments API
// @version 1.0
// @description Calendar and event scheduling backend with recurring events
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
