package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits the CORS origin list
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The process reads the environment once at
// startup; the resulting struct is passed into handlers and repositories
// and nothing consults the environment after Load returns.
type Config struct {
	Env          string   // application environment (e.g. "dev", "prod")
	Port         string   // HTTP port to listen on
	MongoURL     string   // MongoDB connection string
	DBName       string   // database name
	SecretKey    string   // secret used to sign access tokens
	AccessTTLMin int      // access token time-to-live in minutes
	BcryptCost   int      // bcrypt cost for password hashing
	CORSOrigins  []string // allowed cross-origin hosts
	UploadDir    string   // directory where uploaded files are stored
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Optional values fall
// back to the defaults the original deployment used: a 7 day token window
// and a bcrypt cost of 12.
func Load() Config {
	return Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("APP_PORT", "8000"),
		MongoURL:     must("MONGO_URL"),
		DBName:       must("DB_NAME"),
		SecretKey:    must("SECRET_KEY"),
		AccessTTLMin: getint("ACCESS_TOKEN_TTL_MIN", 60*24*7), // 7 days
		BcryptCost:   getint("BCRYPT_COST", 12),
		CORSOrigins:  splitOrigins(getenv("CORS_ORIGINS", "*")),
		UploadDir:    getenv("UPLOAD_DIR", "uploads"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
