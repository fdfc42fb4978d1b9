// Package publish broadcasts signed claims to a network relay. Publishing is
// fire-and-forget: the wallet core never awaits the relay for correctness and
// a relay failure never fails the operation that produced the claim.
package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Sink accepts signed payloads for broadcast.
type Sink interface {
	Publish(kind int, signedPayload string)
}

// Relay posts signed payloads to an HTTP relay endpoint.
type Relay struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewRelay creates a relay sink for the given publish URL.
func NewRelay(url string, logger *log.Logger) *Relay {
	return &Relay{
		url: url,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		logger: logger,
	}
}

// Publish sends the payload to the relay on a background goroutine. Errors
// are logged and dropped; there is no acknowledgment.
func (r *Relay) Publish(kind int, signedPayload string) {
	go func() {
		if err := r.post(kind, signedPayload); err != nil {
			r.logger.Printf("relay publish failed: %v", err)
		}
	}()
}

func (r *Relay) post(kind int, signedPayload string) error {
	body, err := json.Marshal(map[string]any{
		"kind":    kind,
		"payload": signedPayload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode relay event: %w", err)
	}

	resp, err := r.client.Post(r.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post to relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned non-2xx status: %s", resp.Status)
	}
	return nil
}

// Discard is a Sink that drops every payload. Useful in tests and for builds
// without a relay.
type Discard struct{}

// Publish drops the payload.
func (Discard) Publish(kind int, signedPayload string) {}
