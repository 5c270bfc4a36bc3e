// Package mazeapi is the HTTP client of the remote maze generator and solver.
package mazeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/maze"
	"github.com/beka-birhanu/vinom-mazeview/service/i"
)

const (
	generatePath = "/generate"
	solvePath    = "/pass"

	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
)

var (
	ErrTransport      = errors.New("maze service request failed")
	ErrCannotGenerate = fmt.Errorf("can not get maze from server: %w", ErrTransport)
	ErrCannotSolve    = fmt.Errorf("cannot get path from server: %w", ErrTransport)
	ErrBadResponse    = errors.New("malformed maze service response")
)

// Client implements i.MazeService over HTTP/JSON.
type Client struct {
	baseURL string
	http    *http.Client
	logger  i.Logger
}

var _ i.MazeService = &Client{}

// Config holds configuration settings for creating a new Client.
type Config struct {
	BaseURL    string       // Service root, e.g. http://localhost:8080
	HTTPClient *http.Client // Optional, defaults to a client with a 10s timeout
	Logger     i.Logger
}

// NewClient creates a maze service client.
func NewClient(c Config) (*Client, error) {
	if c.BaseURL == "" {
		return nil, errors.New("maze service base url is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		http:    c.HTTPClient,
		logger:  c.Logger,
	}, nil
}

// Generate implements i.MazeService.
func (c *Client) Generate(ctx context.Context, rows, cols int) ([]maze.Bitset, []maze.Bitset, error) {
	if err := maze.Validate(rows, cols); err != nil {
		return nil, nil, err
	}

	var resp generateResponse
	c.logger.Info(fmt.Sprintf("requesting maze %dx%d", rows, cols))
	if err := c.post(ctx, generatePath, generateRequest{Rows: rows, Cols: cols}, &resp); err != nil {
		c.logger.Error(fmt.Sprintf("generate request failed: %s", err))
		return nil, nil, fmt.Errorf("%w: %w", ErrCannotGenerate, err)
	}

	// Some generators send a trailing horizontal row for the outer boundary.
	if len(resp.Verticals) != rows || len(resp.Horizontals) < rows-1 {
		return nil, nil, fmt.Errorf("%w: got %d vertical and %d horizontal rows for %dx%d", ErrBadResponse, len(resp.Verticals), len(resp.Horizontals), rows, cols)
	}

	vertical, err := parseRows(resp.Verticals)
	if err != nil {
		return nil, nil, err
	}
	horizontal, err := parseRows(resp.Horizontals[:rows-1])
	if err != nil {
		return nil, nil, err
	}
	return vertical, horizontal, nil
}

// Solve implements i.MazeService.
func (c *Client) Solve(ctx context.Context, m *maze.Maze) ([]maze.CellPosition, error) {
	start, end := m.Start(), m.End()
	req := solveRequest{
		Rows:        m.Rows,
		Cols:        m.Cols,
		Start:       [2]int{start.Row, start.Col},
		End:         [2]int{end.Row, end.Col},
		Verticals:   formatRows(m.Vertical()),
		Horizontals: formatRows(m.Horizontal()),
	}

	var resp solveResponse
	c.logger.Info(fmt.Sprintf("requesting path %v -> %v", start, end))
	if err := c.post(ctx, solvePath, req, &resp); err != nil {
		c.logger.Error(fmt.Sprintf("solve request failed: %s", err))
		return nil, fmt.Errorf("%w: %w", ErrCannotSolve, err)
	}

	path := make([]maze.CellPosition, len(resp.Pass))
	for k, cell := range resp.Pass {
		path[k] = maze.CellPosition{Row: cell[0], Col: cell[1]}
	}
	return path, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	return nil
}

func parseRows(rows []string) ([]maze.Bitset, error) {
	out := make([]maze.Bitset, len(rows))
	for k, row := range rows {
		b, err := maze.ParseBitset(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
		}
		out[k] = b
	}
	return out, nil
}

func formatRows(rows []maze.Bitset) []string {
	out := make([]string, len(rows))
	for k, row := range rows {
		out[k] = row.String()
	}
	return out
}
