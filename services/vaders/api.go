package vaders

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/vaderstv/stremio-addon/services/metrics"
)

// Category groups channels on the provider side. Categories with an id of 1
// or below carry no channels and are skipped during catalog builds.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Channel is a provider channel record as returned by epg/channels.
type Channel struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	CategoryID int64  `json:"category_id"`
}

// Program is a provider program-guide record.
type Program struct {
	ID          int64  `json:"id"`
	ChannelID   int64  `json:"channel_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Poster      string `json:"poster"`
	StartTime   string `json:"start_time"`
	StopTime    string `json:"stop_time"`
}

// AuthError is returned when the provider rejects the supplied credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unknown error occurred"
	}
	return e.Message
}

// Api talks to the provider HTTP API. Every request is authenticated through
// a token query parameter carrying the base64-encoded JSON credentials.
type Api struct {
	cl       *http.Client
	endpoint string
	token    string
}

func New(endpoint, username, password string, cl *http.Client) *Api {
	if endpoint == "" {
		endpoint = "http://vapi.vaders.tv/"
	}
	if endpoint[len(endpoint)-1] != '/' {
		endpoint += "/"
	}
	creds, _ := json.Marshal(struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password})
	return &Api{
		cl:       cl,
		endpoint: endpoint,
		token:    base64.StdEncoding.EncodeToString(creds),
	}
}

func (s *Api) Endpoint() string {
	return s.endpoint
}

func (s *Api) Token() string {
	return s.token
}

// Login validates the credentials against users/me and returns the category
// set granted to the account. A provider-side rejection comes back as
// *AuthError.
func (s *Api) Login(ctx context.Context) ([]Category, error) {
	body, err := s.get(ctx, "login", s.endpoint+"users/me?token="+url.QueryEscape(s.token))
	if err != nil {
		return nil, err
	}
	var resp struct {
		Message    string     `json:"message"`
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode login response")
	}
	if resp.Message != "" {
		return nil, &AuthError{Message: resp.Message}
	}
	return resp.Categories, nil
}

// Channels fetches the channel list of a single category.
func (s *Api) Channels(ctx context.Context, categoryID int64) ([]Channel, error) {
	u := fmt.Sprintf("%vepg/channels?token=%v&category_id=%v",
		s.endpoint, url.QueryEscape(s.token), categoryID)
	body, err := s.get(ctx, "channels", u)
	if err != nil {
		return nil, err
	}
	var channels []Channel
	if err := json.Unmarshal(body, &channels); err != nil {
		return nil, errors.Wrap(err, "failed to decode channel list")
	}
	return channels, nil
}

// Guide fetches the program guide of a channel within the given window.
// The provider answers with either an array of programs or a single bare
// program object; both decode to a slice here.
func (s *Api) Guide(ctx context.Context, channelID string, start, stop time.Time) ([]Program, error) {
	u := fmt.Sprintf("%vepg/channels/%v?token=%v&start=%v&stop=%v",
		s.endpoint, url.PathEscape(channelID), url.QueryEscape(s.token),
		Timestamp(start), Timestamp(stop))
	body, err := s.get(ctx, "guide", u)
	if err != nil {
		return nil, err
	}
	var programs []Program
	if err := json.Unmarshal(body, &programs); err == nil {
		return programs, nil
	}
	var single Program
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, errors.Wrap(err, "failed to decode program guide")
	}
	if single.ID == 0 {
		return nil, nil
	}
	return []Program{single}, nil
}

// StreamURL builds the playback URL for a stream id. No request is made and
// no session check happens here: the host player fetches the URL itself.
func (s *Api) StreamURL(streamID string) string {
	return s.endpoint + "play/" + streamID + ".m3u8?token=" + s.token
}

// Timestamp renders t the way the provider guide endpoints expect it:
// UTC, second precision, digits only.
func Timestamp(t time.Time) string {
	return t.UTC().Format("20060102150405")
}

func (s *Api) get(ctx context.Context, op, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.cl.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(op, "error").Inc()
		return nil, errors.Wrap(err, "failed to execute request")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(op, "error").Inc()
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, errors.Errorf("provider returned status %d", resp.StatusCode)
	}
	metrics.ProviderRequests.WithLabelValues(op, "ok").Inc()
	return body, nil
}
