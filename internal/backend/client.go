// Package backend is the client for the anomaly-detection API the dashboard
// sits in front of. It is a plain value wired in by the caller; there is no
// shared global instance.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/hamed0406/anomalydash/internal/domain"
)

// ErrUnsupportedFile rejects uploads before any bytes hit the wire.
var ErrUnsupportedFile = errors.New("unsupported file type (want .csv or .json)")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// The backend wraps the record list twice; missing layers decode to their
// zero values so a sparse response degrades to an empty list.
type resultsEnvelope struct {
	Data struct {
		Anomalies struct {
			Count int             `json:"count"`
			Data  []domain.Record `json:"data"`
		} `json:"anomalies"`
	} `json:"data"`
}

// FetchResults pulls the current result set. A response missing the expected
// fields yields an empty list and zero count, not an error.
func (c *Client) FetchResults(ctx context.Context) ([]domain.Record, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/results", nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, 0, fmt.Errorf("fetch results: backend returned %s", resp.Status)
	}

	var env resultsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, 0, fmt.Errorf("fetch results: decode: %w", err)
	}
	return env.Data.Anomalies.Data, env.Data.Anomalies.Count, nil
}

type statisticsEnvelope struct {
	Success bool `json:"success"`
	Data    *struct {
		TotalRecords      int64   `json:"totalRecords"`
		AnomaliesCount    int64   `json:"anomaliesCount"`
		DetectionAccuracy float64 `json:"detectionAccuracy"`
	} `json:"data"`
	Error string `json:"error"`
}

// FetchStatistics pulls the backend's summary numbers.
func (c *Client) FetchStatistics(ctx context.Context) (*domain.Statistics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/statistics", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch statistics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch statistics: backend returned %s", resp.Status)
	}

	var env statisticsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("fetch statistics: decode: %w", err)
	}
	if !env.Success || env.Data == nil {
		msg := env.Error
		if msg == "" {
			msg = "statistics unavailable"
		}
		return nil, fmt.Errorf("fetch statistics: %s", msg)
	}
	return &domain.Statistics{
		TotalRecords:      env.Data.TotalRecords,
		AnomaliesCount:    env.Data.AnomaliesCount,
		DetectionAccuracy: env.Data.DetectionAccuracy,
		FetchedAt:         time.Now().UTC(),
	}, nil
}

type uploadResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Upload sends a data file to the backend as the multipart field "file" and
// returns the backend's message. Only .csv and .json are accepted.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".json" {
		return "", ErrUnsupportedFile
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("upload: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	var out uploadResponse
	_ = json.NewDecoder(resp.Body).Decode(&out) // best effort; non-JSON bodies fall through

	if resp.StatusCode/100 != 2 {
		if out.Error != "" {
			return "", fmt.Errorf("upload: %s", out.Error)
		}
		return "", fmt.Errorf("upload: backend returned %s", resp.Status)
	}
	return out.Message, nil
}

// TriggerAutomation kicks off a backend re-analysis run. The endpoint has no
// body contract; only the status class matters.
func (c *Client) TriggerAutomation(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/automation", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("automation: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("automation: backend returned %s", resp.Status)
	}
	return nil
}

// Ping checks backend reachability via its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("backend unhealthy: %s", resp.Status)
	}
	return nil
}
