package main

import (
	"os"

	"hotelbook/commands"
)

// @title Hotelbook API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
