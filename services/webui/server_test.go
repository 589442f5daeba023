package webui

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/lib/testutil"
	"pricewise-backend/services/accounts"
	"pricewise-backend/services/accounts/db"
	"pricewise-backend/services/search"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setup(t testing.TB) (*httptest.Server, *http.Client) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/webui",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"shopping_results": [
				{"title": "Phone B", "source": "Flipkart", "price": "₹1,000", "link": "/shop/1"},
				{"title": "Phone A", "source": "Amazon", "price": "₹500", "link": "https://amazon.in/x"},
				{"title": "Phone C", "source": "Croma"}
			]
		}`))
	}))
	t.Cleanup(engine.Close)

	service := NewService(
		search.NewService(serpapi.NewClient(serpapi.Config{
			BaseUrl: engine.URL,
			ApiKey:  "test-key",
		})),
		accounts.NewService(res.DB, accounts.Options{}),
	)
	mux := http.NewServeMux()
	service.Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return server, &http.Client{Jar: jar}
}

func postForm(t testing.TB, client *http.Client, target string, form url.Values) *goquery.Document {
	res, err := client.PostForm(target, form)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func getPage(t testing.TB, client *http.Client, target string) *goquery.Document {
	res, err := client.Get(target)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSearchPage(t *testing.T) {
	server, client := setup(t)

	doc := postForm(t, client, server.URL+"/search", url.Values{
		"product": {"phone"},
		"sort":    {"low"},
	})

	listings := doc.Find("li.listing")
	// the priceless Croma listing is dropped
	require.Equal(t, 2, listings.Length())

	stores := listings.Map(func(_ int, sel *goquery.Selection) string {
		return sel.Find(".store").Text()
	})
	require.Equal(t, []string{"Amazon", "Flipkart"}, stores)

	links := listings.Map(func(_ int, sel *goquery.Selection) string {
		href, _ := sel.Find("a.buy").Attr("href")
		return href
	})
	require.Equal(t, []string{
		"https://amazon.in/x",
		"https://www.google.co.in/shop/1",
	}, links)

	logos := listings.Map(func(_ int, sel *goquery.Selection) string {
		src, _ := sel.Find("img.logo").Attr("src")
		return src
	})
	require.Equal(t, []string{
		"/static/logos/amazon.png",
		"/static/logos/flipkart.png",
	}, logos)

	doc = postForm(t, client, server.URL+"/search", url.Values{
		"product": {"phone"},
		"sort":    {"high"},
	})
	stores = doc.Find("li.listing .store").Map(func(_ int, sel *goquery.Selection) string {
		return sel.Text()
	})
	require.Equal(t, []string{"Flipkart", "Amazon"}, stores)
}

func TestSearchDispatchFailure(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/webui",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	service := NewService(
		search.NewService(serpapi.NewClient(serpapi.Config{
			BaseUrl: "http://127.0.0.1:1",
			ApiKey:  "test-key",
		})),
		accounts.NewService(res.DB, accounts.Options{}),
	)
	mux := http.NewServeMux()
	service.Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	doc := postForm(t, &http.Client{}, server.URL+"/search", url.Values{
		"product": {"phone"},
	})
	require.Equal(t, "Failed to fetch results", strings.TrimSpace(doc.Find("p.error").Text()))
}

func TestAccountFlow(t *testing.T) {
	server, client := setup(t)

	// register logs the new user in via the session cookie
	postForm(t, client, server.URL+"/register", url.Values{
		"username": {"bob"},
		"email":    {"bob@email.com"},
		"password": {"hunter2"},
	})

	doc := getPage(t, client, server.URL+"/")
	require.Contains(t, doc.Find("nav").Text(), "bob")

	// a logged-in search is recorded in history
	postForm(t, client, server.URL+"/search", url.Values{
		"product": {"phone"},
		"sort":    {"low"},
	})

	doc = getPage(t, client, server.URL+"/account")
	queries := doc.Find("ul.history .query").Map(func(_ int, sel *goquery.Selection) string {
		return sel.Text()
	})
	require.Equal(t, []string{"phone"}, queries)

	// log out, the account page redirects to login
	postForm(t, client, server.URL+"/logout", url.Values{})
	res, err := client.Get(server.URL + "/account")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	require.Equal(t, server.URL+"/login", res.Request.URL.String())
}

func TestAnonymousSearchKeepsNoHistory(t *testing.T) {
	server, client := setup(t)

	postForm(t, client, server.URL+"/search", url.Values{
		"product": {"phone"},
	})

	res, err := client.Get(server.URL + "/account")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	require.Equal(t, server.URL+"/login", res.Request.URL.String())
}
