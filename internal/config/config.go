package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, bools for policy switches.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign JWTs
	TokenTTLDays int    // access token time-to-live in days
	BcryptCost   int    // bcrypt cost for password hashing

	// AdminInviteCodes lists codes accepted by the admin invite
	// verification endpoint.  Empty means no admin self-registration.
	AdminInviteCodes []string

	// RevokePointsOnReject controls whether rejecting a submission claws
	// back the points granted at creation.  The platform historically
	// keeps rejected points as goodwill, so this defaults to false.
	RevokePointsOnReject bool

	// Blob storage settings.  StorageDriver selects "local" (files under
	// PublicDir) or "s3".  The S3 fields are required only for the s3
	// driver; an empty endpoint uses the default AWS resolution.
	StorageDriver string
	PublicDir     string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:                  must("APP_ENV"),      // environment (dev/test/prod)
		Port:                 must("APP_PORT"),     // port to bind the HTTP server
		DBUser:               must("DB_USER"),      // database user
		DBPass:               os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:               must("DB_HOST"),      // database host
		DBPort:               must("DB_PORT"),      // database port
		DBName:               must("DB_NAME"),      // database name
		JWTSecret:            must("JWT_SECRET"),   // secret used for signing JWTs
		TokenTTLDays:         mustInt("TOKEN_TTL_DAYS"),
		BcryptCost:           mustInt("BCRYPT_COST"),
		AdminInviteCodes:     splitCodes(os.Getenv("ADMIN_INVITE_CODES")),
		RevokePointsOnReject: envBool("POINTS_REVOKE_ON_REJECT", false),
		StorageDriver:        envStr("STORAGE_DRIVER", "local"),
		PublicDir:            envStr("PUBLIC_DIR", "public"),
		S3Bucket:             os.Getenv("S3_BUCKET"),
		S3Region:             os.Getenv("S3_REGION"),
		S3Endpoint:           os.Getenv("S3_ENDPOINT"),
		S3AccessKey:          os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:          os.Getenv("S3_SECRET_KEY"),
	}
	if cfg.StorageDriver == "s3" && cfg.S3Bucket == "" {
		log.Fatal("STORAGE_DRIVER=s3 requires S3_BUCKET")
	}
	return cfg
}

// splitCodes parses a comma-separated list of invite codes, dropping
// blanks so a trailing comma does not create an empty valid code.
func splitCodes(raw string) []string {
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
