package flexquery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const statementBody = `<FlexQueryResponse queryName="ledger" type="AF"><FlexStatements count="1"><FlexStatement accountId="U1234567"/></FlexStatements></FlexQueryResponse>`

// newTestClient wires a Client to a fake web service that checks the
// protocol parameters and serves the statement after "generating" tries.
func newTestClient(t *testing.T, generating int) *Client {
	t.Helper()

	polls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/SendRequest", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("v") != version || q.Get("t") != "token" || q.Get("q") != "query" {
			t.Errorf("SendRequest called with parameters %v", q)
		}
		w.Write([]byte(`<FlexStatementResponse><Status>Success</Status><ReferenceCode>REF001</ReferenceCode></FlexStatementResponse>`))
	})
	mux.HandleFunc("/GetStatement", func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "REF001" {
			t.Errorf("GetStatement called with reference %q", q)
		}
		if polls < generating {
			polls++
			w.Write([]byte(`<FlexStatementResponse><Status>Warn</Status><ErrorCode>1019</ErrorCode><ErrorMessage>Statement generation in progress</ErrorMessage></FlexStatementResponse>`))
			return
		}
		w.Write([]byte(statementBody))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := New("token", "query")
	c.client = server.Client()
	c.sendURL = server.URL + "/SendRequest"
	c.getURL = server.URL + "/GetStatement"
	return c
}

func TestRetrieve(t *testing.T) {
	c := newTestClient(t, 0)

	statement, err := c.Retrieve(context.Background(), 0)
	if err != nil {
		t.Fatalf("Retrieve() returned an unexpected error: %v", err)
	}
	if string(statement) != statementBody {
		t.Errorf("Retrieve() = %q, want the statement document", statement)
	}
}

func TestRetrieveWaitsWhileGenerating(t *testing.T) {
	c := newTestClient(t, 2)

	statement, err := c.Retrieve(context.Background(), 0)
	if err != nil {
		t.Fatalf("Retrieve() returned an unexpected error: %v", err)
	}
	if string(statement) != statementBody {
		t.Errorf("Retrieve() = %q, want the statement document", statement)
	}
}

func TestRequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<FlexStatementResponse><Status>Fail</Status><ErrorCode>1012</ErrorCode><ErrorMessage>Token has expired.</ErrorMessage></FlexStatementResponse>`))
	}))
	defer server.Close()

	c := New("token", "query")
	c.client = server.Client()
	c.sendURL = server.URL

	_, err := c.Request(context.Background())
	if err == nil {
		t.Fatal("Request() accepted a failed response")
	}
	if !strings.Contains(err.Error(), "Token has expired.") {
		t.Errorf("error %q does not carry the service message", err)
	}
}

func TestStatementFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<FlexStatementResponse><Status>Fail</Status><ErrorCode>1020</ErrorCode><ErrorMessage>Invalid request or unable to validate request.</ErrorMessage></FlexStatementResponse>`))
	}))
	defer server.Close()

	c := New("token", "query")
	c.client = server.Client()
	c.getURL = server.URL

	if _, _, err := c.Statement(context.Background(), "REF001"); err == nil {
		t.Fatal("Statement() accepted a failed response")
	}
}

func TestRetrieveCancelled(t *testing.T) {
	c := newTestClient(t, maxAttempts+1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Retrieve(ctx, 0); err == nil {
		t.Fatal("Retrieve() ignored a cancelled context")
	}
}
