package sheet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Fetch downloads a workbook from a cloud URL and parses it. Used by the
// sync flow; a network failure surfaces as an error, never a partial load.
func Fetch(ctx context.Context, rawURL string) ([]Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	httpc := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download da base de dados: HTTP %d", resp.StatusCode)
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	return LoadWorkbook(resp.Body, name)
}
