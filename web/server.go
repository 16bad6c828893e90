// Package web serves the public product catalog. Every page load runs a
// fresh ingestion; nothing is cached between requests.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"stcatalog/catalog"
	"stcatalog/config"
	"stcatalog/importer"
	"stcatalog/internal/observability"
	"stcatalog/money"
)

//go:embed templates/*.html
var templateFS embed.FS

// Ingest is the ingestion entry point the catalog pages run per request.
type Ingest interface {
	Run(ctx context.Context) (*importer.Result, error)
}

type Server struct {
	ingest  Ingest
	cfg     config.Config
	logger  logrus.FieldLogger
	metrics *observability.Metrics
	mux     *http.ServeMux

	categories    []catalog.Category
	imageObserver ImageObserver
}

type ServerOption func(*Server)

func WithLogger(logger logrus.FieldLogger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes metrics on GET /metrics.
func WithMetrics(metrics *observability.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithCategories sets the category chips shown on the catalog page. By
// default every configured category gets a chip.
func WithCategories(sources []catalog.CategorySource) ServerOption {
	return func(s *Server) {
		s.categories = catalog.Categories(sources)
	}
}

type categoryChipView struct {
	Name   string
	Link   string
	Active bool
}

type productCardView struct {
	ID           string
	Name         string
	Category     string
	PriceList    string
	PriceCash    string
	ModelURL     string
	Image        string
	Fallbacks    string
	WhatsAppLink string
}

type catalogPageView struct {
	Title            string
	Query            string
	Category         string
	Chips            []categoryChipView
	Products         []productCardView
	FailedCategories []string
	TotalProducts    int
}

type productsResponse struct {
	Products         []catalog.Product  `json:"products"`
	FailedCategories []catalog.Category `json:"failedCategories"`
}

func NewServer(ing Ingest, cfg config.Config, opts ...ServerOption) http.Handler {
	server := &Server{
		ingest:     ing,
		cfg:        cfg,
		logger:     logrus.StandardLogger(),
		categories: catalog.Categories(cfg.Categories),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.imageObserver == nil {
		server.imageObserver = logImageObserver(server.logger)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleCatalog)
	mux.HandleFunc("GET /api/products", server.handleAPIProducts)
	mux.HandleFunc("POST /api/events/image-open", server.handleImageOpened)
	mux.HandleFunc("GET /healthz", server.handleHealth)
	if server.metrics != nil {
		mux.Handle("GET /metrics", server.metrics.Handler())
	}
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	category, query := filterParams(r)

	result, err := s.ingest.Run(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("catalog ingestion failed")
		http.Error(w, "catalog unavailable", http.StatusInternalServerError)
		return
	}

	products := FilterProducts(result.Products, category, query)
	view := catalogPageView{
		Title:         s.title(),
		Query:         query,
		Category:      string(category),
		Chips:         s.categoryChips(category, query),
		Products:      make([]productCardView, 0, len(products)),
		TotalProducts: len(result.Products),
	}
	for _, failed := range result.FailedCategories() {
		view.FailedCategories = append(view.FailedCategories, string(failed))
	}
	for _, product := range products {
		view.Products = append(view.Products, s.productCard(product))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderTemplate(w, "catalog.html", view); err != nil {
		s.logger.WithError(err).Error("render catalog page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	category, query := filterParams(r)

	result, err := s.ingest.Run(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("catalog ingestion failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "catalog unavailable"})
		return
	}

	failed := result.FailedCategories()
	if failed == nil {
		failed = []catalog.Category{}
	}
	writeJSON(w, http.StatusOK, productsResponse{
		Products:         FilterProducts(result.Products, category, query),
		FailedCategories: failed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) title() string {
	if title := strings.TrimSpace(s.cfg.Web.Title); title != "" {
		return title
	}
	return "Catálogo"
}

func (s *Server) categoryChips(active catalog.Category, query string) []categoryChipView {
	chips := []categoryChipView{{Name: "Todos", Link: catalogLink("", query), Active: active == ""}}
	for _, category := range s.categories {
		chips = append(chips, categoryChipView{
			Name:   string(category),
			Link:   catalogLink(category, query),
			Active: category == active,
		})
	}
	return chips
}

func (s *Server) productCard(product catalog.Product) productCardView {
	images := ImageCandidates(s.cfg.Web.ImagesBaseURL, product.Category, product.Name)
	return productCardView{
		ID:           product.ID,
		Name:         product.Name,
		Category:     string(product.Category),
		PriceList:    money.FormatARS(product.PriceList),
		PriceCash:    money.FormatARS(product.PriceCash),
		ModelURL:     product.ModelURL,
		Image:        images[0],
		Fallbacks:    strings.Join(images[1:], " "),
		WhatsAppLink: WhatsAppLink(s.cfg.Contact.WhatsAppNumber, s.cfg.Contact.MessagePrefix, product),
	}
}

func filterParams(r *http.Request) (catalog.Category, string) {
	values := r.URL.Query()
	return catalog.Category(strings.TrimSpace(values.Get("category"))), strings.TrimSpace(values.Get("q"))
}

func catalogLink(category catalog.Category, query string) string {
	params := make([]string, 0, 2)
	if category != "" {
		params = append(params, "category="+url.QueryEscape(string(category)))
	}
	if query != "" {
		params = append(params, "q="+url.QueryEscape(query))
	}
	if len(params) == 0 {
		return "/"
	}
	return "/?" + strings.Join(params, "&")
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
