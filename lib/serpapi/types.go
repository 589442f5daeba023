package serpapi

// Listing is a single entry of the `shopping_results` array returned by
// the google_shopping engine. None of the fields are guaranteed to be
// present, consumers must treat every one of them as optional.
type Listing struct {
	Title        string `json:"title"`
	Source       string `json:"source"`
	Price        string `json:"price"`
	Link         string `json:"link"`
	ProductLink  string `json:"product_link"`
	ShoppingLink string `json:"shopping_link"`
	OffersLink   string `json:"offers_link"`
	Thumbnail    string `json:"thumbnail"`
}

type searchResponse struct {
	ShoppingResults []Listing `json:"shopping_results"`
}
