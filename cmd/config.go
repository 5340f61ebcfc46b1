package cmd

import "fmt"

// Config holds the runtime settings of the delivery engine.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RabbitMQURL is optional; with an empty URL the engine runs without
	// notification publishing.
	RabbitMQURL      string
	RabbitMQExchange string
}

// PostgresDSN builds the GORM connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
