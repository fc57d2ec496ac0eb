package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type httpSender struct {
	url   string
	httpc *http.Client
}

// NewHTTP builds a Sender posting to the email cloud function URL.
func NewHTTP(url string) Sender {
	return &httpSender{
		url:   url,
		httpc: &http.Client{Timeout: 25 * time.Second},
	}
}

func (s *httpSender) Send(ctx context.Context, sub Submission) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("envio de e-mail: HTTP %d", resp.StatusCode)
	}
	return nil
}
