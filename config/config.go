package config

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"stcatalog/catalog"
)

const (
	KeySheetsSpreadsheetID     = "sheets.spreadsheet_id"
	KeySheetsBaseURL           = "sheets.base_url"
	KeySheetsUserAgent         = "sheets.user_agent"
	KeySheetsTimeout           = "sheets.timeout"
	KeySheetsRequestsPerSecond = "sheets.requests_per_second"
	KeyIngestConcurrency       = "ingest.concurrency"
	KeyCategories              = "categories"
	KeyContactWhatsAppNumber   = "contact.whatsapp_number"
	KeyContactMessagePrefix    = "contact.message_prefix"
	KeyWebPort                 = "web.port"
	KeyWebTitle                = "web.title"
	KeyWebImagesBaseURL        = "web.images_base_url"
	KeyLogLevel                = "log.level"
	KeyLogFile                 = "log.file"
	KeyLogMaxSizeMB            = "log.max_size_mb"
	KeyLogMaxBackups           = "log.max_backups"

	DefaultSpreadsheetID = "1IkY9tbrR87y_WBE6fOr-aNwsfr8f2EY5haHMTBNdrMY"
)

type Config struct {
	Sheets     SheetsConfig             `mapstructure:"sheets"`
	Ingest     IngestConfig             `mapstructure:"ingest"`
	Categories []catalog.CategorySource `mapstructure:"categories" validate:"required,min=1,dive"`
	Contact    ContactConfig            `mapstructure:"contact"`
	Web        WebConfig                `mapstructure:"web"`
	Log        LogConfig                `mapstructure:"log"`
}

type SheetsConfig struct {
	SpreadsheetID     string        `mapstructure:"spreadsheet_id" validate:"required"`
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
}

type IngestConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=16"`
}

type ContactConfig struct {
	WhatsAppNumber string `mapstructure:"whatsapp_number"`
	MessagePrefix  string `mapstructure:"message_prefix"`
}

type WebConfig struct {
	Port          int    `mapstructure:"port" validate:"min=1,max=65535"`
	Title         string `mapstructure:"title"`
	ImagesBaseURL string `mapstructure:"images_base_url"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// Default returns the validated configuration built from defaults only.
func Default() Config {
	local := viper.New()
	setDefaults(local)
	cfg, err := loadAndValidateFromViper(local)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return *cfg
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return TemplateYAML(DefaultSpreadsheetID, catalog.DefaultSources())
}

// TemplateYAML renders the configuration template for a spreadsheet and its
// category table. Values are quoted, so names may contain spaces or accents.
func TemplateYAML(spreadsheetID string, sources []catalog.CategorySource) string {
	var b strings.Builder
	b.WriteString(`# stcatalog configuration
sheets:
  spreadsheet_id: ` + strconv.Quote(spreadsheetID) + `
  base_url: "https://docs.google.com"
  timeout: 15s
  requests_per_second: 0

ingest:
  concurrency: 4

# Display order. endpoint is the tab gid for the gsheets source, the file
# name (without .csv) for the dir source and the sheet name for excel.
categories:
`)
	for _, src := range sources {
		b.WriteString("  - name: " + strconv.Quote(string(src.Category)) + "\n")
		b.WriteString("    endpoint: " + strconv.Quote(src.Endpoint) + "\n")
	}
	b.WriteString(`
contact:
  whatsapp_number: ""
  message_prefix: "Hola! Quiero consultar por"

web:
  port: 8080
  title: "Catálogo ST Importados"
  images_base_url: "/assets/products"

log:
  level: "info"
  file: ""
`)
	return b.String()
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateCategories(cfg.Categories); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySheetsSpreadsheetID, DefaultSpreadsheetID)
	v.SetDefault(KeySheetsBaseURL, "https://docs.google.com")
	v.SetDefault(KeySheetsUserAgent, "stcatalog/1.0")
	v.SetDefault(KeySheetsTimeout, 15*time.Second)
	v.SetDefault(KeySheetsRequestsPerSecond, 0)
	v.SetDefault(KeyIngestConcurrency, 4)
	v.SetDefault(KeyCategories, defaultCategories())
	v.SetDefault(KeyContactWhatsAppNumber, "")
	v.SetDefault(KeyContactMessagePrefix, "Hola! Quiero consultar por")
	v.SetDefault(KeyWebPort, 8080)
	v.SetDefault(KeyWebTitle, "Catálogo ST Importados")
	v.SetDefault(KeyWebImagesBaseURL, "/assets/products")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSizeMB, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
}

func defaultCategories() []map[string]any {
	sources := catalog.DefaultSources()
	out := make([]map[string]any, 0, len(sources))
	for _, src := range sources {
		out = append(out, map[string]any{
			"name":     string(src.Category),
			"endpoint": src.Endpoint,
		})
	}
	return out
}

func validateCategories(categories []catalog.CategorySource) error {
	seenNames := make(map[string]struct{}, len(categories))
	seenEndpoints := make(map[string]struct{}, len(categories))
	for i, category := range categories {
		name := strings.TrimSpace(string(category.Category))
		if name == "" {
			return fmt.Errorf("validation failed: categories[%d].name is required", i)
		}
		key := strings.ToUpper(name)
		if _, exists := seenNames[key]; exists {
			return fmt.Errorf("validation failed: duplicate category name %q", name)
		}
		seenNames[key] = struct{}{}

		endpoint := strings.TrimSpace(category.Endpoint)
		if endpoint == "" {
			return fmt.Errorf("validation failed: categories[%d].endpoint is required", i)
		}
		if _, exists := seenEndpoints[endpoint]; exists {
			return fmt.Errorf("validation failed: categories[%d] reuses endpoint %q", i, endpoint)
		}
		seenEndpoints[endpoint] = struct{}{}
	}
	return nil
}
