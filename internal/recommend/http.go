package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody bounds how much of a provider response is read.
const maxBody = 1 << 20

// HTTPClient calls GET {baseURL}/recipes/{id}/related, which answers with a
// JSON array of {"id": n, "score": f}.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Recommendations(ctx context.Context, recipeID uint64) ([]Recommendation, error) {
	url := fmt.Sprintf("%s/recipes/%d/related", c.baseURL, recipeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("recommend: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommend: calling provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommend: provider returned %s", resp.Status)
	}

	var recs []Recommendation
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&recs); err != nil {
		return nil, fmt.Errorf("recommend: decoding response: %w", err)
	}
	return recs, nil
}
