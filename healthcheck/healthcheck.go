// Standalone probe used as the Docker HEALTHCHECK command. It hits the
// service's /health endpoint and exits non-zero on any failure.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultPort    = "3000"
	requestTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := probe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: %v\n", err)
		os.Exit(1)
	}
}

func probe(ctx context.Context) error {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = defaultPort
	}

	url := fmt.Sprintf("http://localhost:%s/health", port)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received status %d from %s", resp.StatusCode, url)
	}
	if string(body) != "OK" {
		return fmt.Errorf("unexpected health response body %q", string(body))
	}

	return nil
}
