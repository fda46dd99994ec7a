package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ORSClient talks to the OpenRouteService REST API.
type ORSClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewORSClient(baseURL, apiKey string, timeout time.Duration) *ORSClient {
	return &ORSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates Coordinates `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *ORSClient) Coordinates(ctx context.Context, address string) (Coordinates, error) {
	var fc featureCollection
	if err := c.get(ctx, "/geocode/search", url.Values{"text": {address}, "size": {"1"}}, &fc); err != nil {
		return Coordinates{}, err
	}
	if len(fc.Features) == 0 {
		return Coordinates{}, ErrNoResult
	}
	return fc.Features[0].Geometry.Coordinates, nil
}

// Autocomplete maps a location label to its coordinates, up to 5 results.
func (c *ORSClient) Autocomplete(ctx context.Context, text string) (map[string]Coordinates, error) {
	var fc featureCollection
	if err := c.get(ctx, "/geocode/autocomplete", url.Values{"text": {text}, "size": {"5"}}, &fc); err != nil {
		return nil, err
	}
	out := make(map[string]Coordinates, len(fc.Features))
	for _, f := range fc.Features {
		out[f.Properties.Label] = f.Geometry.Coordinates
	}
	return out, nil
}

// WalkingDistance returns the foot-walking distance in metres.
func (c *ORSClient) WalkingDistance(ctx context.Context, from, to Coordinates) (float64, error) {
	body, err := json.Marshal(map[string]any{
		"locations": []Coordinates{from, to},
		"metrics":   []string{"distance"},
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/matrix/foot-walking", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Distances [][]*float64 `json:"distances"`
	}
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	if len(out.Distances) == 0 || len(out.Distances[0]) < 2 || out.Distances[0][1] == nil {
		return 0, fmt.Errorf("geo: malformed matrix response")
	}
	return *out.Distances[0][1], nil
}

func (c *ORSClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *ORSClient) do(req *http.Request, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geo: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("geo: %s %s: status %d: %s", req.Method, req.URL.Path, res.StatusCode, bytes.TrimSpace(msg))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("geo: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
