package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// TestContext carries HTTP state across scenario steps. The cookie jar is the
// point: the service transports tokens exclusively via cookies, so the jar
// behaves like a browser session.
type TestContext struct {
	baseURL string
	client  *http.Client

	lastStatus int
	lastBody   map[string]any
}

func NewTestContext(baseURL string) (*TestContext, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Jar: jar},
	}, nil
}

// Reset clears the cookie jar and recorded response between scenarios.
func (tc *TestContext) Reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	tc.client.Jar = jar
	tc.lastStatus = 0
	tc.lastBody = nil
	return nil
}

func (tc *TestContext) POST(path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(http.MethodPost, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	res, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	tc.lastStatus = res.StatusCode
	tc.lastBody = nil
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tc.lastBody); err != nil {
			return fmt.Errorf("response is not JSON: %w", err)
		}
	}
	return nil
}

func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) ResponseField(field string) (any, error) {
	v, ok := tc.lastBody[field]
	if !ok {
		return nil, fmt.Errorf("field %q not present in response", field)
	}
	return v, nil
}

// HasCookie reports whether the jar currently holds the named cookie for the
// service host.
func (tc *TestContext) HasCookie(name string) (bool, error) {
	u, err := url.Parse(tc.baseURL)
	if err != nil {
		return false, err
	}
	for _, c := range tc.client.Jar.Cookies(u) {
		if c.Name == name && c.Value != "" {
			return true, nil
		}
	}
	return false, nil
}

// DropCookie removes the named cookie from the jar, simulating an expired or
// cleared browser cookie.
func (tc *TestContext) DropCookie(name string) error {
	u, err := url.Parse(tc.baseURL)
	if err != nil {
		return err
	}
	var keep []*http.Cookie
	for _, c := range tc.client.Jar.Cookies(u) {
		if c.Name != name {
			keep = append(keep, c)
		}
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	jar.SetCookies(u, keep)
	tc.client.Jar = jar
	return nil
}
