package utils

import "os"

type ServerConfig struct {
	HTTPAddr    string
	RecentScans int
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("CONVEYORHUB_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return ServerConfig{
		HTTPAddr:    addr,
		RecentScans: 10,
	}
}
