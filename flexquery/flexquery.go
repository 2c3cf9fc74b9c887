// Package flexquery retrieves statements from the Interactive Brokers Flex
// Web Service.
//
// Retrieval is a two-step protocol: SendRequest starts the generation of the
// statement and returns a reference code, GetStatement downloads it once the
// service has finished generating.
package flexquery

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	sendRequestURL  = "https://ndcdyn.interactivebrokers.com/AccountManagement/FlexWebService/SendRequest"
	getStatementURL = "https://ndcdyn.interactivebrokers.com/AccountManagement/FlexWebService/GetStatement"

	// protocol version of the Flex Web Service
	version = "3"

	// error code returned by GetStatement while the statement is still generating
	codeGenerating = "1019"

	maxAttempts = 10
)

// Client queries the Flex Web Service for one configured Flex query.
type Client struct {
	Token   string // authentication token of the Flex Web Service
	QueryID string // query to execute

	client  *http.Client
	sendURL string
	getURL  string
}

// New returns a Client for the given token and query ID.
func New(token, queryID string) *Client {
	return &Client{
		Token:   token,
		QueryID: queryID,
		client:  http.DefaultClient,
		sendURL: sendRequestURL,
		getURL:  getStatementURL,
	}
}

// statementResponse is the service's control envelope, returned by
// SendRequest and by GetStatement while the statement is not ready.
type statementResponse struct {
	XMLName       xml.Name `xml:"FlexStatementResponse"`
	Status        string   `xml:"Status"`
	ReferenceCode string   `xml:"ReferenceCode"`
	ErrorCode     string   `xml:"ErrorCode"`
	ErrorMessage  string   `xml:"ErrorMessage"`
}

// Request asks the service to generate the statement and returns the
// reference code to download it with.
func (c *Client) Request(ctx context.Context) (reference string, err error) {
	body, err := c.get(ctx, c.sendURL, c.QueryID)
	if err != nil {
		return "", fmt.Errorf("SendRequest failed: %w", err)
	}
	var resp statementResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("cannot parse SendRequest response: %w", err)
	}
	if resp.Status != "Success" {
		return "", fmt.Errorf("SendRequest was not Success: %s (code %s)", resp.ErrorMessage, resp.ErrorCode)
	}
	return resp.ReferenceCode, nil
}

// Statement downloads the generated statement. ready is false when the
// service reports that generation is still in progress.
func (c *Client) Statement(ctx context.Context, reference string) (statement []byte, ready bool, err error) {
	body, err := c.get(ctx, c.getURL, reference)
	if err != nil {
		return nil, false, fmt.Errorf("GetStatement failed: %w", err)
	}

	// While generating, the service answers with the control envelope
	// instead of the statement document.
	var resp statementResponse
	if err := xml.Unmarshal(body, &resp); err == nil && resp.XMLName.Local == "FlexStatementResponse" {
		if resp.ErrorCode == codeGenerating {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("GetStatement was not Success: %s (code %s)", resp.ErrorMessage, resp.ErrorCode)
	}
	return body, true, nil
}

// Retrieve runs the full protocol: it requests the statement, waits, and
// downloads it, retrying while the service is still generating.
func (c *Client) Retrieve(ctx context.Context, wait time.Duration) ([]byte, error) {
	reference, err := c.Request(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("statement generation started, reference %s", reference)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		statement, ready, err := c.Statement(ctx, reference)
		if err != nil {
			return nil, err
		}
		if ready {
			return statement, nil
		}
		log.Printf("statement still generating, retrying (%d/%d)", attempt, maxAttempts)
	}
	return nil, fmt.Errorf("statement %s still generating after %d attempts", reference, maxAttempts)
}
