package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var ErrNonPublicAddress = errors.New("address is not publicly routable")

type GeoLocator interface {
	CountryCode(ctx context.Context, ip string) (string, error)
}

// IPAPIClient looks up the ISO country of an address through ipapi.co.
type IPAPIClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewIPAPIClient(baseURL string) *IPAPIClient {
	return &IPAPIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 3 * time.Second},
	}
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func (c *IPAPIClient) CountryCode(ctx context.Context, ip string) (string, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast() {
		return "", ErrNonPublicAddress
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", c.BaseURL, parsed.String()), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation status %d", resp.StatusCode)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geolocation response: %w", err)
	}
	if body.Error {
		return "", fmt.Errorf("geolocation: %s", body.Reason)
	}
	if body.CountryCode == "" {
		return "", errors.New("geolocation: empty country_code")
	}
	return strings.ToUpper(body.CountryCode), nil
}
