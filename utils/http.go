package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by every outbound call (Steam Web API). The
// timeout bounds how long a hanging upstream can hold a request.
var HTTPClient = &http.Client{
	Timeout: 15 * time.Second,
}
