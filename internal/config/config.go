package config

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type Store struct {
	// Backend selects the room store: "memory" (default), "redis" or
	// "postgres".
	Backend      string
	RoomIDLength int
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GenAI struct {
	// APIKey empty means story generation runs against the built-in stub.
	APIKey string
	Model  string
}

type Config struct {
	HTTP     HTTPServer
	Store    Store
	Redis    RedisCache
	Postgres Postgres
	GenAI    GenAI
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path to env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	return &Config{
		HTTP:     *newHTTP(),
		Store:    *newStore(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		GenAI:    *newGenAI(),
	}
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newStore() *Store {
	return &Store{
		Backend:      getenv("STORE_BACKEND", "memory"),
		RoomIDLength: getenvInt("ROOM_ID_LENGTH", 6),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "poker"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newGenAI() *GenAI {
	return &GenAI{
		APIKey: getenv("GEMINI_API_KEY", ""),
		Model:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s %s is not a number, using default %d", logtag, key, defaultValue)
		return defaultValue
	}
	return n
}
