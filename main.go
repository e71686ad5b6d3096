package main

import (
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/core/server"

	_ "github.com/Ecospace254/employee-sub000/docs" // Swagger docs
)

// @title Employee Portal Events API
// @version 1.0
// @description Events and RSVP backend for the employee onboarding portal.

// @contact.name Platform Team
// @contact.email platform@ecospace254.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
// @description Session cookie issued by POST /api/auth/login

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
