package catalog

// Category identifies one catalog partition. Each category is published as
// its own spreadsheet tab.
type Category string

// CategorySource binds a category to the endpoint identifier its CSV text is
// fetched from (a gviz gid, a file name or a sheet name depending on the source).
type CategorySource struct {
	Category Category `mapstructure:"name" validate:"required"`
	Endpoint string   `mapstructure:"endpoint" validate:"required"`
}

// Product is the normalized catalog record produced by ingestion and consumed
// by outputs and the web catalog.
type Product struct {
	ID        string   `json:"id"`
	Category  Category `json:"category"`
	Name      string   `json:"name"`
	PriceList *float64 `json:"priceList"`
	PriceCash *float64 `json:"priceCash"`
	ModelURL  string   `json:"modelUrl,omitempty"`
}

// ProductID derives the stable identifier of a product. Two rows with the same
// name inside one category share an ID.
func ProductID(category Category, name string) string {
	return string(category) + ":" + name
}

func (p Product) HasModelURL() bool {
	return p.ModelURL != ""
}

// DefaultSources is the published spreadsheet's tab table, in display order.
func DefaultSources() []CategorySource {
	return []CategorySource{
		{Category: "JBL", Endpoint: "0"},
		{Category: "CELULARES", Endpoint: "401435989"},
		{Category: "RELOJ SMART", Endpoint: "71516678"},
		{Category: "RELOJES CASIO", Endpoint: "1021956832"},
		{Category: "APPLE", Endpoint: "81224994"},
		{Category: "XIAOMI", Endpoint: "1451776874"},
		{Category: "VAPER", Endpoint: "465325186"},
		{Category: "OTROS", Endpoint: "581617004"},
	}
}

// Categories returns the categories of sources, preserving order.
func Categories(sources []CategorySource) []Category {
	out := make([]Category, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Category)
	}
	return out
}
