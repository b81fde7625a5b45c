package climate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// OpenGridSource opens a grid from a local path or an http(s) URL. The
// request honours ctx.
func OpenGridSource(ctx context.Context, src string, client *http.Client) (io.ReadCloser, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("climate: no grid source configured")
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("climate: grid request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("climate: fetch grid: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("climate: fetch grid: %s", resp.Status)
		}
		return resp.Body, nil
	}
	path, err := homedir.Expand(src)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("climate: open grid: %w", err)
	}
	return f, nil
}
