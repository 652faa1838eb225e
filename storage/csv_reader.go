package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"realestate-bot/utils"
)

// CSVSource reads a dataset from a local CSV file or a CSV export URL
// (for example a Google Sheets `export?format=csv` link).
type CSVSource struct {
	path   string
	url    string
	client *http.Client
	retry  *utils.RetryConfig
}

// NewCSVSource creates a source reading the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// NewRemoteCSVSource creates a source fetching CSV over HTTP. Each attempt
// is bounded by timeout; failed attempts are retried by retry.
func NewRemoteCSVSource(url string, timeout time.Duration, retry *utils.RetryConfig) *CSVSource {
	return &CSVSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

// Describe returns the file path or URL the source reads from.
func (c *CSVSource) Describe() string {
	if c.url != "" {
		return c.url
	}
	return c.path
}

// Load reads the whole CSV document.
func (c *CSVSource) Load(ctx context.Context) ([]string, [][]string, error) {
	if c.url == "" {
		f, err := os.Open(c.path)
		if err != nil {
			return nil, nil, fmt.Errorf("csv: open %q: %w", c.path, err)
		}
		defer f.Close()
		return readCSV(f)
	}

	var body []byte
	fetch := func() error {
		b, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	if c.retry != nil {
		if err := c.retry.Do(ctx, "csv fetch", fetch); err != nil {
			return nil, nil, err
		}
	} else if err := fetch(); err != nil {
		return nil, nil, err
	}

	return readCSV(bytes.NewReader(body))
}

func (c *CSVSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("csv: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("csv: fetch %q: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("csv: fetch %q: unexpected status %s", c.url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("csv: read body: %w", err)
	}
	return b, nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("csv: read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
