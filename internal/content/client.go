package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	TypeCourse   = "course"
	TypeBlogPost = "blogPost"
	TypeFAQ      = "faq"
	TypeSEO      = "seoMetadata"

	DefaultHost        = "https://cdn.contentful.com"
	DefaultEnvironment = "master"
)

var ErrNotConfigured = errors.New("content provider not configured")

// Query selects entries of one content type.
type Query struct {
	ContentType string
	Limit       int
	Order       string
	Fields      map[string]string
	Include     int
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("content_type", q.ContentType)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	include := q.Include
	if include <= 0 {
		include = 2
	}
	v.Set("include", strconv.Itoa(include))
	for field, value := range q.Fields {
		v.Set("fields."+field, value)
	}
	return v
}

type sys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType"`
}

type rawEntry struct {
	Sys    sys             `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

type assetFile struct {
	URL     string `json:"url"`
	Details struct {
		Image struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"image"`
	} `json:"details"`
}

type rawAsset struct {
	Sys    sys `json:"sys"`
	Fields struct {
		Title string    `json:"title"`
		File  assetFile `json:"file"`
	} `json:"fields"`
}

// EntryCollection is the CDN's entries response with linked assets.
type EntryCollection struct {
	Total    int        `json:"total"`
	Items    []rawEntry `json:"items"`
	Includes struct {
		Asset []rawAsset `json:"Asset"`
	} `json:"includes"`
}

func (c *EntryCollection) asset(id string) (rawAsset, bool) {
	for _, a := range c.Includes.Asset {
		if a.Sys.ID == id {
			return a, true
		}
	}
	return rawAsset{}, false
}

// Client talks to the Contentful Content Delivery API.
type Client struct {
	spaceID     string
	accessToken string
	environment string
	host        string
	httpClient  *http.Client
}

type ClientOptions struct {
	SpaceID     string
	AccessToken string
	Environment string
	Host        string
	Timeout     time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if strings.TrimSpace(opts.SpaceID) == "" || strings.TrimSpace(opts.AccessToken) == "" {
		return nil, ErrNotConfigured
	}
	env := strings.TrimSpace(opts.Environment)
	if env == "" {
		env = DefaultEnvironment
	}
	host := strings.TrimRight(strings.TrimSpace(opts.Host), "/")
	if host == "" {
		host = DefaultHost
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		spaceID:     strings.TrimSpace(opts.SpaceID),
		accessToken: strings.TrimSpace(opts.AccessToken),
		environment: env,
		host:        host,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) SpaceID() string {
	return c.spaceID
}

// Entries runs one query against the CDN.
func (c *Client) Entries(ctx context.Context, q Query) (*EntryCollection, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.host, url.PathEscape(c.spaceID), url.PathEscape(c.environment), q.values().Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentful request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("contentful status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var collection EntryCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("contentful decode: %w", err)
	}
	return &collection, nil
}
