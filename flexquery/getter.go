package flexquery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// get little helper to retrieve a payload from the web service. Both
// endpoints take the same three parameters: the protocol version, the token,
// and a query parameter that is either the query ID or a reference code.
func (c *Client) get(ctx context.Context, uri, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("v", version)
	params.Set("t", c.Token)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request %q: %w", uri, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot execute http request: %w", err)
	}
	body := resp.Body
	defer body.Close()

	// reading in a buffer to be able to inspect the payload on errors
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return nil, fmt.Errorf("cannot read receiving http body: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("flex web service returned %s: %s", resp.Status, buf.String())
	}

	return buf.Bytes(), nil
}
