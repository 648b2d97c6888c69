package lightbox

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rotisserie/eris"
)

// DefaultBaseURL is the production LightBox gateway.
const DefaultBaseURL = "https://api.lightboxre.com/v1"

// Client wraps the LightBox real-estate data API. All calls are single-attempt
// GETs authenticated by the x-api-key header; the caller owns the status-code
// contract (200 result list, 400 bad input, 401 bad credential, 404 no match).
type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different gateway, typically a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient swaps the underlying transport, typically a test server's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http.HTTPClient = hc }
}

func NewClient(apiKey string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0 // one attempt per call; non-2xx is an answer, not a failure
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil

	c := &Client{
		key:     apiKey,
		baseURL: DefaultBaseURL,
		http:    rc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Response is the raw outcome of one API call. Body is fully read and the
// connection released before Response is returned.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool { return r.StatusCode == http.StatusOK }

// SearchAddresses geocodes a free-text address. The text is sent verbatim;
// an empty or unmatchable address is the upstream's call to reject.
func (c *Client) SearchAddresses(ctx context.Context, text string) (*Response, error) {
	q := url.Values{}
	q.Set("text", text)
	return c.get(ctx, "/addresses/search", q)
}

// ParcelsByGeometry fetches parcels intersecting a WKT geometry, usually the
// representative point of a geocoded address.
func (c *Client) ParcelsByGeometry(ctx context.Context, country, wkt string) (*Response, error) {
	q := url.Values{}
	q.Set("wkt", wkt)
	return c.get(ctx, "/parcels/"+url.PathEscape(country)+"/geometry", q)
}

// ParcelsByAddressID fetches parcels sitting on a LightBox address id.
func (c *Client) ParcelsByAddressID(ctx context.Context, country, addressID string) (*Response, error) {
	return c.get(ctx, "/parcels/_on/address/"+url.PathEscape(country)+"/"+url.PathEscape(addressID), nil)
}

// AssessmentsByParcel fetches assessment records for a parcel id.
func (c *Client) AssessmentsByParcel(ctx context.Context, country, parcelID string) (*Response, error) {
	return c.get(ctx, "/assessments/_on/parcel/"+url.PathEscape(country)+"/"+url.PathEscape(parcelID), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*Response, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "lightbox: build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "lightbox: GET %s", path)
	}
	defer resp.Body.Close()

	body, err := readAllLimit(resp.Body, 4<<20) // 4MB guard
	if err != nil {
		return nil, eris.Wrapf(err, "lightbox: read %s body", path)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
