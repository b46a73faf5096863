package log

import (
	"time"
)

// LogHTTPRequest records one request served by the management bridge
func LogHTTPRequest(method, path string, status int, duration time.Duration, remoteAddr string, err error) {
	fields := []interface{}{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"remote_addr", remoteAddr,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		Errorw("http request", fields...)
		return
	}

	Debugw("http request", fields...)
}
