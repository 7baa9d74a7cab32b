package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// TestContext carries one scenario's HTTP state against a running server.
type TestContext struct {
	BaseURL string
	RunID   string

	client      *http.Client
	accessToken string
	forwardedIP string
	saved       map[string]string

	lastStatus  int
	lastBody    []byte
	lastHeaders http.Header
}

func NewTestContext(baseURL, runID string) *TestContext {
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		RunID:   runID,
		client:  &http.Client{Timeout: 10 * time.Second},
		saved:   map[string]string{},
	}
}

// Reset clears per-scenario state. The run id is kept so names stay unique
// across scenarios of one run.
func (tc *TestContext) Reset() {
	tc.accessToken = ""
	tc.forwardedIP = ""
	tc.saved = map[string]string{}
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastHeaders = nil
}

// Unique suffixes name with the run id so repeated runs against one database
// do not collide.
func (tc *TestContext) Unique(name string) string {
	return name + "-" + tc.RunID
}

func (tc *TestContext) Request(method, path string, body interface{}, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	if tc.forwardedIP != "" {
		req.Header.Set("X-Forwarded-For", tc.forwardedIP)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeaders = resp.Header
	return nil
}

func (tc *TestContext) POST(path string, body interface{}) error {
	return tc.Request(http.MethodPost, path, body, nil)
}

func (tc *TestContext) PUT(path string, body interface{}) error {
	return tc.Request(http.MethodPut, path, body, nil)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.Request(http.MethodGet, path, nil, headers)
}

func (tc *TestContext) DELETE(path string) error {
	return tc.Request(http.MethodDelete, path, nil, nil)
}

func (tc *TestContext) GetLastResponseStatus() int  { return tc.lastStatus }
func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }
func (tc *TestContext) GetResponseHeader(name string) string {
	if tc.lastHeaders == nil {
		return ""
	}
	return tc.lastHeaders.Get(name)
}

func (tc *TestContext) GetAccessToken() string      { return tc.accessToken }
func (tc *TestContext) SetAccessToken(token string) { tc.accessToken = token }
func (tc *TestContext) SetForwardedIP(ip string)    { tc.forwardedIP = ip }

func (tc *TestContext) Save(key, value string) { tc.saved[key] = value }
func (tc *TestContext) Recall(key string) (string, error) {
	v, ok := tc.saved[key]
	if !ok {
		return "", fmt.Errorf("nothing saved as %q", key)
	}
	return v, nil
}

// GetResponseField resolves a dotted path inside the response envelope,
// e.g. "data.user.role.roleCode" or "error".
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON (status %d): %s", tc.lastStatus, tc.lastBody)
	}
	cur := doc
	for _, part := range strings.Split(field, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", field, tc.lastBody)
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", part, field)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("field %q not found in %s", field, tc.lastBody)
		}
	}
	return cur, nil
}

// ResponseString is GetResponseField rendered as text.
func (tc *TestContext) ResponseString(field string) (string, error) {
	v, err := tc.GetResponseField(field)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case nil:
		return "", nil
	default:
		raw, _ := json.Marshal(t)
		return string(raw), nil
	}
}
