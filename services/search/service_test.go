package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/lib/telemetry"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fakeEngine(t testing.TB, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchPipeline(t *testing.T) {
	cleanup := telemetry.SetupForTesting("services/search")
	defer cleanup()

	server := fakeEngine(t, `{
		"shopping_results": [
			{"source": "Flipkart", "price": "₹1,000", "link": "/shop/1"},
			{"source": "Amazon", "price": "₹500", "link": "https://amazon.in/x"},
			{"title": "no price here", "source": "Croma"}
		]
	}`)

	service := NewService(serpapi.NewClient(serpapi.Config{
		BaseUrl: server.URL,
		ApiKey:  "test-key",
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	results, err := service.Search(ctx, "phone", "low")
	if err != nil {
		t.Fatal(err)
	}

	expect := []Result{
		{
			Store:      "Amazon",
			Price:      "₹500",
			PriceValue: 500,
			Link:       "https://amazon.in/x",
			Logo:       "amazon.png",
		},
		{
			Store:      "Flipkart",
			Price:      "₹1,000",
			PriceValue: 1000,
			Link:       "https://www.google.co.in/shop/1",
			Logo:       "flipkart.png",
		},
	}
	diff := cmp.Diff(expect, results)
	require.Empty(t, diff)

	results, err = service.Search(ctx, "phone", "high")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Flipkart", results[0].Store)
	require.Equal(t, "Amazon", results[1].Store)
}

func TestSearchEmptyResults(t *testing.T) {
	cleanup := telemetry.SetupForTesting("services/search")
	defer cleanup()

	server := fakeEngine(t, `{}`)
	service := NewService(serpapi.NewClient(serpapi.Config{
		BaseUrl: server.URL,
		ApiKey:  "test-key",
	}))

	results, err := service.Search(context.Background(), "", "low")
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, results)
}

func TestSearchDispatchFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting("services/search")
	defer cleanup()

	service := NewService(serpapi.NewClient(serpapi.Config{
		BaseUrl: "http://127.0.0.1:1",
		ApiKey:  "test-key",
	}))

	_, err := service.Search(context.Background(), "phone", "low")
	require.Error(t, err)
}
