package httpserver

import "time"

const (
	defaultPort = "3000"

	readTimeout       = 5 * time.Second
	readHeaderTimeout = 3 * time.Second
	idleTimeout       = 60 * time.Second
	maxHeaderBytes    = 1 << 12 // 4kb

	// metricsWriteTimeout bounds a scrape response.
	metricsWriteTimeout = 10 * time.Second
)
