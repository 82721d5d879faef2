package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// fetchBody issues a GET with a bounded timeout and returns the response
// body bytes along with the Content-Type header. Mirrors the fetch helper
// every adapter shares; callers decide how to parse.
func fetchBody(ctx context.Context, client *http.Client, url, userAgent string, timeout time.Duration) ([]byte, string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// decodeKorean transcodes a payload served in a legacy Korean charset to
// UTF-8. Some of the older gov endpoints still answer in EUC-KR; JSON
// parsing requires UTF-8, so the body is converted up front. Payloads
// already in UTF-8 pass through untouched.
func decodeKorean(data []byte, contentType string) []byte {
	ct := strings.ToLower(contentType)
	if !strings.Contains(ct, "euc-kr") && !strings.Contains(ct, "ks_c_5601") && !strings.Contains(ct, "cp949") {
		return data
	}

	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return data
	}
	return decoded
}
