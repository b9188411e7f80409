package util

import (
	"fmt"
	"net/http"
	"strings"
)

// LoggingEnabled gates LogF. The language server cannot log to stdout (the
// protocol owns it), so debug messages go to a local collector instead.
var LoggingEnabled = false

var collectorURL = "http://localhost:8006/log"

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)
	go http.Post(collectorURL, "text/plain", strings.NewReader(message))
}
