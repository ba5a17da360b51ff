// Package coingecko looks up live USD prices on the public CoinGecko API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptofolio"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public, keyless, API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client is a cryptofolio.PriceSource backed by the CoinGecko simple price
// endpoint. A single request is made per lookup, failures are neither retried
// nor cached.
type Client struct {
	BaseURL string
	APIKey  string // optional demo API key
	HTTP    *http.Client
}

// New returns a client on 'baseURL' whose requests time out after 'timeout'.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{base: http.DefaultTransport},
		},
	}
}

// CoinID derives the CoinGecko coin id from an asset display name: lowercase,
// with every run of whitespace replaced by a hyphen.
//
//	CoinID("Bitcoin Cash") == "bitcoin-cash"
func CoinID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Price returns the current USD price of the asset named 'name'.
//
// All failures wrap cryptofolio.ErrPriceUnavailable.
func (c *Client) Price(ctx context.Context, name string) (cryptofolio.Money, error) {
	id := CoinID(name)
	if id == "" {
		return cryptofolio.Money{}, fmt.Errorf("%w: empty asset name", cryptofolio.ErrPriceUnavailable)
	}

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd")
	addr := c.BaseURL + "/simple/price?" + q.Encode()

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return cryptofolio.Money{}, fmt.Errorf("%w: %q: %w", cryptofolio.ErrPriceUnavailable, name, err)
	}

	price, err := usdPrice(jobj, id)
	if err != nil {
		return cryptofolio.Money{}, fmt.Errorf("%w: %q: %w", cryptofolio.ErrPriceUnavailable, name, err)
	}
	return cryptofolio.Dollars(price), nil
}

// usdPrice reads the positive value at $["<id>"].usd.
func usdPrice(jobj any, id string) (decimal.Decimal, error) {
	path := fmt.Sprintf("$[%q].usd", id)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price not found for coin %q", id)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case json.Number:
		price, err = decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid price %q for coin %q: %w", v, id, err)
		}
	case float64:
		price = decimal.NewFromFloat(v)
	default:
		return decimal.Zero, fmt.Errorf("price for coin %q is not a number: %v", id, jval)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("no price for coin %q: %v", id, price)
	}
	return price, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the
// provided data structure, keeping numbers exact.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.APIKey)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(data)
}

// loggingTransport logs every request to the standard logger.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Printf("%v %v%v failed: %v", req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	log.Printf("%v %v%v %v in %v", req.Method, req.URL.Host, req.URL.Path, resp.Status, time.Since(start).Round(time.Millisecond))
	return resp, nil
}
