package propertydata

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/hec/home-equity-compass/internal/domain"
)

const (
	extractEndpoint = "/extract"
	contentType     = "application/json"

	defaultTimeout = 30 * time.Second
)

// Facts is the optional partial record an extraction returns for a listing.
// Nil fields were not present on the page.
type Facts struct {
	HomeValue     *decimal.Decimal `json:"home_value,omitempty"`
	PropertyTax   *decimal.Decimal `json:"property_tax,omitempty"`
	HomeInsurance *decimal.Decimal `json:"home_insurance,omitempty"`
	HOA           *decimal.Decimal `json:"hoa,omitempty"`
}

// Options configures the extraction client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
}

// Client calls the property-data extraction service. Failures are recoverable:
// they surface as returned errors and never affect projections already
// computed. The projection engine itself never calls this package; callers
// merge the result into a Scenario before projecting.
type Client struct {
	baseURL     string
	retryClient *retryablehttp.Client
}

// NewClient creates a new extraction client.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.RetryMax = opts.MaxRetries
	retryClient.Logger = nil

	return &Client{
		baseURL:     opts.BaseURL,
		retryClient: retryClient,
	}
}

// Fetch asks the extraction service for the facts behind a listing URL.
func (c *Client) Fetch(ctx context.Context, listingURL string) (*Facts, error) {
	if _, err := url.ParseRequestURI(listingURL); err != nil {
		return nil, errors.Wrap(err, "invalid listing URL")
	}

	endpoint := c.baseURL + extractEndpoint + "?url=" + url.QueryEscape(listingURL)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", contentType)

	resp, err := c.retryClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "extraction request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("extraction service returned %d: %s", resp.StatusCode, string(body))
	}

	var facts Facts
	if err := json.NewDecoder(resp.Body).Decode(&facts); err != nil {
		return nil, errors.Wrap(err, "failed to decode extraction response")
	}
	return &facts, nil
}

// Merge applies the non-nil facts onto a scenario and returns the fields that
// changed. Annual figures land on the scenario's annual cost fields.
func Merge(s *domain.Scenario, facts *Facts) []string {
	if facts == nil {
		return nil
	}
	var changed []string
	if facts.HomeValue != nil {
		s.HomeValue = *facts.HomeValue
		changed = append(changed, "home_value")
	}
	if facts.PropertyTax != nil {
		s.PropertyTax = *facts.PropertyTax
		changed = append(changed, "property_tax")
	}
	if facts.HomeInsurance != nil {
		s.HomeInsurance = *facts.HomeInsurance
		changed = append(changed, "home_insurance")
	}
	if facts.HOA != nil {
		s.HOA = *facts.HOA
		changed = append(changed, "hoa")
	}
	return changed
}
