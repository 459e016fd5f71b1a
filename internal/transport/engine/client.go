package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/caro-client/internal/apperror"
)

const (
	movePath = "/move"

	maxResponseSize = 1 << 20
)

type Client struct {
	logger *slog.Logger

	baseURL    string
	httpClient *http.Client
}

// New - returns a client for the engine at baseURL. timeout bounds the whole
// request; zero means no limit.
func New(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:     logger.With("component", "engine"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Move - asks the engine for its reply to the given position. Every failure to
// obtain a well-formed answer wraps apperror.ErrTransportFailure.
func (that *Client) Move(ctx context.Context, request MoveRequest) (*MoveResponse, error) {
	log := that.logger.With("method", "Move")

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: could not marshal request: %w", apperror.ErrTransportFailure, err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+movePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: could not build request: %w", apperror.ErrTransportFailure, err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	started := time.Now()

	resp, err := that.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	var response MoveResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&response)

	if resp.StatusCode != http.StatusOK {
		log.Error("engine returned an error", "status", resp.StatusCode, "error", response.Error)
		return nil, fmt.Errorf("%w: status %d", apperror.ErrTransportFailure, resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: could not decode response: %w", apperror.ErrTransportFailure, decodeErr)
	}

	log.Debug("engine replied", "move", response.Move, "winner", response.Winner.Outcome, "elapsed", time.Since(started))

	return &response, nil
}
