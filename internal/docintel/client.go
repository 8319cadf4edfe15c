// Package docintel calls the document-intelligence service that extracts
// structured fields (title, expiry date, ...) from an uploaded document URL.
// Analysis is a long-running operation: the submit call returns an operation
// URL which is polled until a terminal state.
package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appconfig "supplier-management-api-server/config"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const apiVersion = "2024-02-29-preview"

var ErrAnalysisFailed = errors.New("document analysis failed")

// Result holds the extracted fields of a single analyzed document.
type Result struct {
	Fields map[string]string
}

// Field returns the content of a named field, or "" when absent.
func (r Result) Field(name string) string {
	return r.Fields[name]
}

type Client struct {
	endpoint     string
	apiKey       string
	modelID      string
	pollInterval time.Duration
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[Result]
}

func NewClient(cfg appconfig.DocIntelConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	pollInterval := time.Duration(cfg.PollIntervalSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[Result](gobreaker.Settings{
		Name:    "docintel",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.APIKey,
		modelID:      cfg.ModelID,
		pollInterval: pollInterval,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(rps), 1),
		breaker:      breaker,
	}
}

// Analyze submits documentURL for analysis and blocks until the operation
// reaches a terminal state. The breaker opens after repeated failures so a
// degraded analysis backend does not pile up worker goroutines.
func (c *Client) Analyze(ctx context.Context, documentURL string) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}
	return c.breaker.Execute(func() (Result, error) {
		return c.analyze(ctx, documentURL)
	})
}

func (c *Client) analyze(ctx context.Context, documentURL string) (Result, error) {
	operationURL, err := c.submit(ctx, documentURL)
	if err != nil {
		return Result{}, err
	}
	return c.poll(ctx, operationURL)
}

func (c *Client) submit(ctx context.Context, documentURL string) (string, error) {
	body, _ := json.Marshal(map[string]string{"urlSource": documentURL})
	url := fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?api-version=%s", c.endpoint, c.modelID, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit document for analysis: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("%w: analyze returned status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	operationURL := resp.Header.Get("Operation-Location")
	if operationURL == "" {
		return "", fmt.Errorf("%w: missing Operation-Location header", ErrAnalysisFailed)
	}
	return operationURL, nil
}

type operationResponse struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		Documents []struct {
			Fields map[string]struct {
				Content string `json:"content"`
			} `json:"fields"`
		} `json:"documents"`
	} `json:"analyzeResult"`
}

func (c *Client) poll(ctx context.Context, operationURL string) (Result, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
		if err != nil {
			return Result{}, fmt.Errorf("failed to build poll request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return Result{}, fmt.Errorf("failed to poll analysis result: %w", err)
		}

		var op operationResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&op)
		resp.Body.Close()
		if decodeErr != nil {
			return Result{}, fmt.Errorf("failed to decode analysis result: %w", decodeErr)
		}

		switch op.Status {
		case "succeeded":
			fields := make(map[string]string)
			if len(op.AnalyzeResult.Documents) > 0 {
				for name, f := range op.AnalyzeResult.Documents[0].Fields {
					fields[name] = f.Content
				}
			}
			return Result{Fields: fields}, nil
		case "failed":
			return Result{}, ErrAnalysisFailed
		}

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
