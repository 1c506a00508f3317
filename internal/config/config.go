package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type StoreDriver string

const (
	StoreMongo    StoreDriver = "mongo"
	StorePostgres StoreDriver = "postgres"
	StoreMemory   StoreDriver = "memory"
)

type Store struct {
	Driver StoreDriver
}

type Mongo struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Dial and ping budget at startup.
	DialTimeout time.Duration
	// Empty host disables the catalog cache.
	Enabled   bool
	KeyPrefix string
}

type Catalog struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Timeout      time.Duration
	// Requests per second towards the provider.
	RateLimit float64
	Burst     int

	PageTTL   time.Duration
	GenresTTL time.Duration
}

type App struct {
	BaseURL string
}

type Session struct {
	MinRating        float64
	MaxDiscoverPages int
	Retention        time.Duration
	SweepInterval    time.Duration
}

type Log struct {
	Level string
}

type Config struct {
	HTTP     HTTPServer
	Store    Store
	Mongo    Mongo
	Postgres Postgres
	Redis    RedisCache
	Catalog  Catalog
	App      App
	Session  Session
	Log      Log
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
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

	cfg := &Config{
		HTTP:     *newHTTP(),
		Store:    *newStore(),
		Mongo:    *newMongo(),
		Postgres: *newPostgres(),
		Redis:    *newRedis(),
		Catalog:  *newCatalog(),
		App:      *newApp(),
		Session:  *newSession(),
		Log:      *newLog(),
	}

	if cfg.Catalog.APIKey == "" {
		log.Printf("%s TMDB_API_KEY is empty, catalog requests will be rejected", logtag)
	}
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		// Empty host listens on all interfaces.
		Host: getenv("HTTP_HOST", ""),
	}
}

func newStore() *Store {
	return &Store{
		Driver: StoreDriver(getenv("STORE_DRIVER", string(StoreMongo))),
	}
}

func newMongo() *Mongo {
	return &Mongo{
		URI:      getenvSecret("MONGO_URI", "mongodb://localhost:27017"),
		Database: getenv("MONGO_DATABASE", "getflix"),
		Timeout:  getenvDuration("MONGO_TIMEOUT", 10*time.Second),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenvSecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "getflix"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newRedis() *RedisCache {
	host := getenv("REDIS_HOST", "")
	return &RedisCache{
		Host:      host,
		Port:      getenv("REDIS_PORT", "6379"),
		Password:    getenvSecret("REDIS_PASSWORD", ""),
		DB:          getenvInt("REDIS_DB", 0),
		DialTimeout: getenvDuration("REDIS_DIAL_TIMEOUT", 2*time.Second),
		Enabled:     host != "",
		KeyPrefix:   getenv("REDIS_KEY_PREFIX", "catalog"),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		BaseURL:      getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		ImageBaseURL: getenv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p"),
		APIKey:       getenvSecret("TMDB_API_KEY", ""),
		Timeout:      getenvDuration("TMDB_TIMEOUT", 10*time.Second),
		RateLimit:    getenvFloat("TMDB_RATE_LIMIT", 40),
		Burst:        getenvInt("TMDB_RATE_BURST", 20),
		PageTTL:      getenvDuration("CATALOG_PAGE_TTL", time.Hour),
		GenresTTL:    getenvDuration("CATALOG_GENRES_TTL", 24*time.Hour),
	}
}

func newApp() *App {
	return &App{
		BaseURL: getenv("APP_BASE_URL", "http://localhost:3000"),
	}
}

func newSession() *Session {
	return &Session{
		MinRating:        getenvFloat("SESSION_MIN_RATING", 6.0),
		MaxDiscoverPages: getenvInt("SESSION_MAX_DISCOVER_PAGES", 1),
		Retention:        getenvDuration("SESSION_RETENTION", 0),
		SweepInterval:    getenvDuration("SESSION_SWEEP_INTERVAL", time.Hour),
	}
}

func newLog() *Log {
	return &Log{
		Level: getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvSecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s = ****\n", logtag, key)
	return val
}

func getenvInt(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s %s must be an integer : %v", logtag, key, err)
	}
	return v
}

func getenvFloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("%s %s must be a number : %v", logtag, key, err)
	}
	return v
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s %s must be a duration : %v", logtag, key, err)
	}
	return v
}
