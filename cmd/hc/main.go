package main

import (
	"net/http"
	"os"
	"time"
)

// main probes a web endpoint and exits with code 0 if it answered with a
// 2xx status, 1 otherwise. Intended for container HEALTHCHECK directives.
// The probe target defaults to the liveness endpoint of a locally running
// portal and can be overridden with the first program argument.
func main() {
	url := "http://localhost:8888/api/v0/now"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	if !checkWebEndpoint(url) {
		os.Exit(1)
	}
}

func checkWebEndpoint(url string) bool {
	client := &http.Client{
		Timeout: 2 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
