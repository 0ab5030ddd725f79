package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartpantry/internal/metrics"
)

const DefaultBaseURL = "https://world.openfoodfacts.org/api/v0/product"

// Client looks up product codes against the Open Food Facts catalog.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type lookupResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Product struct {
		ProductName string         `json:"product_name"`
		Categories  string         `json:"categories"`
		Nutriments  map[string]any `json:"nutriments"`
		ImageURL    string         `json:"image_url"`
	} `json:"product"`
}

// Lookup fetches catalog data for code. An unknown code is not an error: the
// returned product simply has Found=false. Transport and decode failures are
// errors so the caller can decide how to degrade.
func (c *Client) Lookup(ctx context.Context, code string) (Product, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Product{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.CollaboratorCalls.WithLabelValues("product_lookup", "error").Inc()
		return Product{}, fmt.Errorf("querying catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.CollaboratorCalls.WithLabelValues("product_lookup", "miss").Inc()
		return Product{Code: code}, nil
	}

	if resp.StatusCode != http.StatusOK {
		metrics.CollaboratorCalls.WithLabelValues("product_lookup", "error").Inc()
		return Product{}, fmt.Errorf("unexpected status code %d for code %s", resp.StatusCode, code)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.CollaboratorCalls.WithLabelValues("product_lookup", "error").Inc()
		return Product{}, fmt.Errorf("decoding catalog response: %w", err)
	}

	if body.Status == 0 || body.Product.ProductName == "" {
		metrics.CollaboratorCalls.WithLabelValues("product_lookup", "miss").Inc()
		return Product{Code: code}, nil
	}

	metrics.CollaboratorCalls.WithLabelValues("product_lookup", "ok").Inc()

	return Product{
		Code:      code,
		Name:      body.Product.ProductName,
		Category:  firstCategory(body.Product.Categories),
		Nutrition: numericFacts(body.Product.Nutriments),
		ImageURL:  body.Product.ImageURL,
		Found:     true,
	}, nil
}

// firstCategory takes the leading entry of the comma-separated category list.
func firstCategory(categories string) string {
	if categories == "" {
		return ""
	}

	first, _, _ := strings.Cut(categories, ",")

	return strings.ToLower(strings.TrimSpace(first))
}

// numericFacts keeps only the numeric nutriment entries. The catalog mixes
// numbers and strings in the same map.
func numericFacts(nutriments map[string]any) map[string]float64 {
	if len(nutriments) == 0 {
		return nil
	}

	facts := make(map[string]float64)

	for name, value := range nutriments {
		if v, ok := value.(float64); ok {
			facts[name] = v
		}
	}

	if len(facts) == 0 {
		return nil
	}

	return facts
}
