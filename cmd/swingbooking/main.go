package main

import (
	"github.com/joho/godotenv"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/cli"
)

func main() {
	// .env необязателен: в проде переменные приходят из окружения.
	_ = godotenv.Load()

	cli.Execute()
}
