// Package e2e runs the Gherkin scenarios in features/ against a running
// creditref server. Set CREDITREF_BASE_URL and CREDITREF_TOKEN (see
// `creditref token`) to enable them.
package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext carries HTTP state between the steps of one scenario.
type TestContext struct {
	baseURL string
	token   string
	client  *http.Client

	authenticated bool
	lastStatus    int
	lastBody      []byte
	lastHeaders   http.Header
}

func NewTestContext(baseURL, token string) *TestContext {
	return &TestContext{
		baseURL:       strings.TrimRight(baseURL, "/"),
		token:         token,
		client:        &http.Client{Timeout: 10 * time.Second},
		authenticated: true,
	}
}

func (tc *TestContext) SetAuthenticated(authenticated bool) {
	tc.authenticated = authenticated
}

func (tc *TestContext) POST(path, body string) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body))
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.authenticated {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastHeaders = resp.Header
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	return tc.lastHeaders.Get(name)
}

// GetResponseField resolves a dotted path such as "document.applicants.0.given_name"
// in the last JSON response.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var v any
	if err := json.Unmarshal(tc.lastBody, &v); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	for part := range strings.SplitSeq(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", part, path)
			}
			v = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", part, path)
			}
			v = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q in %s", part, path)
		}
	}
	return v, nil
}
