package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = ""     // e.g. "board.example.com,www.board.example.com"
	MYSQL_DSN          = ""     // MySQL will be used if this is set
	SQLITE_FILE        = ""     // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Local scratch space for S3-backed buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial image bucket
	SESSION_KEY        = ""     // Cookie session key; a random one is generated if empty
	DEBUG_MODE         = true
	// The same member viewing the same post again within this period
	// doesn't bump the post's view count
	VIEW_DEDUPE_MINUTES = 30
	// Uploaded post images get a thumbnail that fits this box (pixels)
	THUMB_SIZE = 1280
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvInt("VIEW_DEDUPE_MINUTES", &VIEW_DEDUPE_MINUTES)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
