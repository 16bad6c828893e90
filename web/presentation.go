package web

import (
	"net/url"
	"regexp"
	"strings"

	"stcatalog/catalog"
	"stcatalog/importer"
	"stcatalog/money"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonFileChars    = regexp.MustCompile(`[^A-Za-z0-9-]`)
	hyphenRun       = regexp.MustCompile(`-+`)
	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}
)

// FilterProducts keeps products of category (all when empty) whose normalized
// name contains every normalized word of query.
func FilterProducts(products []catalog.Product, category catalog.Category, query string) []catalog.Product {
	words := strings.Fields(importer.NormalizeKey(query))

	out := make([]catalog.Product, 0, len(products))
	for _, product := range products {
		if category != "" && product.Category != category {
			continue
		}
		if !matchesAll(importer.NormalizeKey(product.Name), words) {
			continue
		}
		out = append(out, product)
	}
	return out
}

func matchesAll(name string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(name, word) {
			return false
		}
	}
	return true
}

// SlugifyForFile turns a product name into the file stem product images are
// stored under.
func SlugifyForFile(name string) string {
	slug := whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "-")
	slug = nonFileChars.ReplaceAllString(slug, "")
	return hyphenRun.ReplaceAllString(slug, "-")
}

// ImageCandidates lists image URLs to try for a product, most specific first.
// The last entry is the category placeholder.
func ImageCandidates(baseURL string, category catalog.Category, name string) []string {
	base := strings.TrimRight(baseURL, "/")
	dir := base + "/" + url.PathEscape(string(category))

	candidates := make([]string, 0, len(imageExtensions)+2)
	if slug := SlugifyForFile(name); slug != "" {
		for _, ext := range imageExtensions {
			candidates = append(candidates, dir+"/"+slug+ext)
		}
	}
	if raw := strings.TrimSpace(name); raw != "" {
		candidates = append(candidates, dir+"/"+url.PathEscape(raw)+".jpg")
	}
	return append(candidates, dir+"/default.jpg")
}

// WhatsAppLink builds a wa.me link that opens a chat with phone prefilled
// with an inquiry about product. Empty when phone has no digits.
func WhatsAppLink(phone, prefix string, product catalog.Product) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}

	message := strings.TrimSpace(prefix + " " + product.Name)
	if product.PriceCash != nil {
		message += " (" + money.FormatARS(product.PriceCash) + ")"
	} else if product.PriceList != nil {
		message += " (" + money.FormatARS(product.PriceList) + ")"
	}

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}
