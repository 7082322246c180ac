package footballdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/charleschow/match-features/internal/telemetry"
)

// Source is one season file and the URL it is published at.
type Source struct {
	SeasonFile string
	URL        string
}

// Client downloads season files from football-data.co.uk.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(perSecond int, timeout time.Duration) *Client {
	if perSecond < 1 {
		perSecond = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Fetch downloads url and checks it carries the required columns.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	telemetry.Debugf("footballdata: GET %s -> %d bytes (%s)", url, len(body), time.Since(start))

	if err := checkHeader(trimBOM(body)); err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return body, nil
}

// FetchMissing downloads every source whose file is not yet in dir and
// returns how many files were written.
func (c *Client) FetchMissing(ctx context.Context, dir string, sources []Source) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create raw dir: %w", err)
	}

	written := 0
	for _, src := range sources {
		dest := filepath.Join(dir, src.SeasonFile)
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return written, fmt.Errorf("stat %s: %w", dest, err)
		}

		data, err := c.Fetch(ctx, src.URL)
		if err != nil {
			return written, fmt.Errorf("fetch %s: %w", src.SeasonFile, err)
		}
		if err := writeAtomic(dest, data); err != nil {
			return written, err
		}
		written++
		telemetry.Metrics.FilesDownloaded.Inc()
		telemetry.Infof("Downloaded %s  bytes=%d", src.SeasonFile, len(data))
	}
	return written, nil
}

func writeAtomic(dest string, data []byte) error {
	tmp := dest + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
