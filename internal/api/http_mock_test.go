package api

import (
	"io"
	"net/url"
	"strings"

	http2 "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// mockHTTPClient implements tls_client.HttpClient for testing
type mockHTTPClient struct {
	doFunc     func(req *http2.Request) (*http2.Response, error)
	closeCalls int
}

func (m *mockHTTPClient) GetCookies(u *url.URL) []*http2.Cookie          { return nil }
func (m *mockHTTPClient) SetCookies(u *url.URL, cookies []*http2.Cookie) {}
func (m *mockHTTPClient) SetCookieJar(jar http2.CookieJar)               {}
func (m *mockHTTPClient) GetCookieJar() http2.CookieJar                  { return nil }
func (m *mockHTTPClient) SetProxy(proxyUrl string) error                 { return nil }
func (m *mockHTTPClient) GetProxy() string                               { return "" }
func (m *mockHTTPClient) SetFollowRedirect(followRedirect bool)          {}
func (m *mockHTTPClient) GetFollowRedirect() bool                        { return false }
func (m *mockHTTPClient) CloseIdleConnections()                          { m.closeCalls++ }
func (m *mockHTTPClient) Get(url string) (*http2.Response, error)        { return nil, nil }
func (m *mockHTTPClient) Head(url string) (*http2.Response, error)       { return nil, nil }
func (m *mockHTTPClient) Post(url, contentType string, body io.Reader) (*http2.Response, error) {
	return nil, nil
}
func (m *mockHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

func (m *mockHTTPClient) Do(req *http2.Request) (*http2.Response, error) {
	if m.doFunc != nil {
		return m.doFunc(req)
	}
	return nil, nil
}

// jsonResponse builds a response with the given status and body
func jsonResponse(status int, body string) *http2.Response {
	return &http2.Response{
		StatusCode: status,
		Header:     http2.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// newTestClient returns a Client backed by a mock transport
func newTestClient(t interface{ Fatalf(string, ...any) }, doFunc func(req *http2.Request) (*http2.Response, error)) (*Client, *mockHTTPClient) {
	mock := &mockHTTPClient{doFunc: doFunc}
	client, err := NewClient(WithBaseURL("http://backend.test/"), WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, mock
}
