package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Addr         string
	CatalogBase  string
	CacheTTL     time.Duration
	DefaultTopic string
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("BOOKMAP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	base := os.Getenv("BOOKMAP_API_BASE")
	if base == "" {
		base = "https://www.googleapis.com/books/v1"
	}

	topic := os.Getenv("BOOKMAP_DEFAULT_TOPIC")
	if topic == "" {
		topic = "fiction"
	}

	// cache entries are good for 12 hours unless overridden
	ttl := 12 * time.Hour
	if s := os.Getenv("BOOKMAP_CACHE_TTL_HOURS"); s != "" {
		if h, err := strconv.Atoi(s); err == nil && h > 0 {
			ttl = time.Duration(h) * time.Hour
		}
	}

	return ServerConfig{
		Addr:         addr,
		CatalogBase:  base,
		CacheTTL:     ttl,
		DefaultTopic: topic,
	}
}
