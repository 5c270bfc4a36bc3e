package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP             string // Host IP for the server
	RESTPort           int    // Port for the REST API
	MazeServiceURL     string // Base URL of the maze generator/solver service
	DBHost             string // Hostname or IP address for the database
	DBPort             int    // Port number for the database
	DBUser             string // Username for the database
	DBPassword         string // Password for the database
	DBName             string // Name of the database
	RedisAddr          string // Address of the Redis server holding the recent saves index
	RedisPassword      string // Password for Redis, empty if none
	RecentTTLSeconds   int    // Expiry of the recent saves index
	CanvasWidth        int    // Width of the rendered canvas in pixels
	CanvasHeight       int    // Height of the rendered canvas in pixels
	PlaybackIntervalMS int    // Delay between revealed path cells
	DefaultRows        int    // Rows of the maze generated at startup
	DefaultCols        int    // Columns of the maze generated at startup
	GinMode            string // Mode for the Gin framework (e.g., release, debug, test)
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	// Populate the Config struct with required environment variables
	return Config{
		HostIP:             mustGetEnv("HOST_IP"),
		RESTPort:           mustGetEnvAsInt("REST_PORT"),
		MazeServiceURL:     getEnvWithDefault("MAZE_SERVICE_URL", "http://localhost:8080"),
		DBHost:             mustGetEnv("DB_HOST"),
		DBPort:             mustGetEnvAsInt("DB_PORT"),
		DBUser:             mustGetEnv("DB_USER"),
		DBPassword:         mustGetEnv("DB_PASS"),
		DBName:             mustGetEnv("DB_NAME"),
		RedisAddr:          mustGetEnv("REDIS_ADDR"),
		RedisPassword:      getEnvWithDefault("REDIS_PASS", ""),
		RecentTTLSeconds:   getEnvAsIntWithDefault("RECENT_TTL_SECONDS", 7*24*60*60),
		CanvasWidth:        getEnvAsIntWithDefault("CANVAS_WIDTH", 1000),
		CanvasHeight:       getEnvAsIntWithDefault("CANVAS_HEIGHT", 500),
		PlaybackIntervalMS: getEnvAsIntWithDefault("PLAYBACK_INTERVAL_MS", 10),
		DefaultRows:        getEnvAsIntWithDefault("DEFAULT_ROWS", 25),
		DefaultCols:        getEnvAsIntWithDefault("DEFAULT_COLS", 50),
		GinMode:            getEnvWithDefault("GIN_MODE", "release"),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers. Unparsable values are fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
