package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"pricewise-backend/lib/restyutil"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("pricewise.lib.serpapi")

var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(output restyutil.InstrumentOutput) {
	restyInstrumentOutput = output
}

type Config struct {
	// defaults to https://serpapi.com when unspecified
	BaseUrl string `json:"base_url"`
	// the SerpApi credential, must never be logged or rendered
	ApiKey string `json:"api_key"`
}

type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(config Config) Client {
	baseUrl := config.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://serpapi.com"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 10)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return Client{
		http:   client,
		apiKey: config.ApiKey,
	}
}

// Search issues one google_shopping query. The locale is pinned to
// english/India. An empty query is a valid search, not an error.
// A response without a `shopping_results` key yields an empty slice
// and a nil error.
func (c Client) Search(ctx context.Context, query string) ([]Listing, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google_shopping",
			"q":       query,
			"hl":      "en",
			"gl":      "in",
			"api_key": c.apiKey,
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("fetch shopping results: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch shopping results: status %d", res.StatusCode())
	}

	var payload searchResponse
	err = json.Unmarshal(res.Body(), &payload)
	if err != nil {
		return nil, fmt.Errorf("decode shopping results: %w", err)
	}

	return payload.ShoppingResults, nil
}
