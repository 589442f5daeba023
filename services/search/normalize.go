package search

import (
	"math"
	"pricewise-backend/lib/serpapi"
	"strconv"
	"strings"
	"unicode"
)

// relative links returned by the shopping engine are paths on the
// google domain serving the in/en locale
const googleHost = "https://www.google.co.in"

// the store name shown when the engine omits the seller
const unknownStore = "Store"

// Result is the canonical, display-ready form of one raw listing.
type Result struct {
	Title string
	Store string
	// the original price text, shown to the user verbatim
	Price string
	// the numeric value ranking sorts on, always defined
	PriceValue int64
	// absolute url or empty, never a bare "/..." path
	Link      string
	Thumbnail string
	Logo      string
}

type logoRule struct {
	substring string
	logo      string
}

// checked in order, first match wins
var logoRules = []logoRule{
	{"amazon", "amazon.png"},
	{"flipkart", "flipkart.png"},
	{"reliance", "reliance.png"},
	{"croma", "croma.png"},
}

// StoreLogo maps a seller name to one of the fixed logo assets.
// Matching is case-insensitive and priority-ordered.
func StoreLogo(store string) string {
	if store == "" {
		return "default.png"
	}
	s := strings.ToLower(store)
	for _, rule := range logoRules {
		if strings.Contains(s, rule.substring) {
			return rule.logo
		}
	}
	return "default.png"
}

// parsePrice extracts the numeric value out of a free-text price like
// "₹12,499" or "₹1,499.00 approx". ok is false when there is nothing
// numeric to extract.
func parsePrice(raw string) (int64, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	// lop currency markers (₹, Rs., $, ...) off the front
	cleaned = strings.TrimLeftFunc(cleaned, func(r rune) bool {
		return !unicode.IsDigit(r)
	})

	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	// a parsed value outside int64 range is garbage, not a price
	if value < 0 || value >= math.MaxInt64 {
		return 0, false
	}
	return int64(value), true
}

// ExtractPrice never fails, unparseable input yields 0 so that ranking
// can always rely on the value being defined.
func ExtractPrice(raw string) int64 {
	value, ok := parsePrice(raw)
	if !ok {
		return 0
	}
	return value
}

func resolveLink(raw serpapi.Listing) string {
	link := raw.Link
	for _, fallback := range []string{raw.ProductLink, raw.ShoppingLink, raw.OffersLink} {
		if link != "" {
			break
		}
		link = fallback
	}
	if strings.HasPrefix(link, "/") {
		link = googleHost + link
	}
	return link
}

// Normalize maps one raw listing to its canonical form. Listings
// without a parseable price are dropped (ok == false), zero-priced
// rows would otherwise sit at the head of every ascending sort.
func Normalize(raw serpapi.Listing) (Result, bool) {
	value, ok := parsePrice(raw.Price)
	if !ok {
		return Result{}, false
	}

	store := raw.Source
	if store == "" {
		store = unknownStore
	}

	return Result{
		Title:      raw.Title,
		Store:      store,
		Price:      raw.Price,
		PriceValue: value,
		Link:       resolveLink(raw),
		Thumbnail:  raw.Thumbnail,
		Logo:       StoreLogo(raw.Source),
	}, true
}
