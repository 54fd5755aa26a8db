package vaders

import (
	"net/http"

	"github.com/urfave/cli"
)

func NewClient(c *cli.Context) *http.Client {
	transport := http.DefaultTransport
	if ua := c.String(UserAgentFlag); ua != "" {
		transport = &userAgentTransport{next: transport, ua: ua}
	}
	return &http.Client{
		Timeout:   c.Duration(TimeoutFlag),
		Transport: transport,
	}
}

type userAgentTransport struct {
	next http.RoundTripper
	ua   string
}

func (t *userAgentTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("User-Agent", t.ua)
	return t.next.RoundTrip(r)
}
