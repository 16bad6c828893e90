package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stcatalog/internal/observability"
	"stcatalog/web"
)

var (
	servePort       int
	serveSource     string
	serveInput      string
	serveNoMetrics  bool
	serveOpen       bool
	serveCategories []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web catalog",
	Long: `Start an HTTP server with the product catalog page and a JSON API.

Every page load runs a fresh ingestion, so spreadsheet edits show up on reload.
Prometheus metrics for ingestion runs are exposed on /metrics unless disabled.`,
	Example: `
  # Start on the configured port (web.port, default 8080)
  stcatalog serve

  # Custom port, no metrics endpoint, open a browser
  stcatalog serve --port 9090 --no-metrics --open

  # Serve a local CSV mirror
  stcatalog serve --source dir --input ./mirror
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var metrics *observability.Metrics
		if !serveNoMetrics {
			metrics = observability.NewMetrics()
		}

		p, err := newPipeline(serveSource, serveInput, serveCategories, metrics)
		if err != nil {
			return err
		}
		defer p.Close()

		port := p.cfg.Web.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		opts := []web.ServerOption{web.WithLogger(p.logger), web.WithCategories(p.sources)}
		if metrics != nil {
			opts = append(opts, web.WithMetrics(metrics))
		}

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           web.NewServer(p.ingester, p.cfg, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		listenURL := fmt.Sprintf("http://localhost:%d", port)
		p.logger.WithField("addr", server.Addr).Info("web catalog listening")
		fmt.Printf("Listening on %s\n", listenURL)
		if serveOpen {
			if openErr := openURLInBrowser(listenURL); openErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open browser: %v\n", openErr)
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port (default: web.port from config)")
	serveCmd.Flags().StringVarP(&serveSource, "source", "s", "gsheets", sourceFlagUsage())
	serveCmd.Flags().StringVarP(&serveInput, "input", "i", "", "Directory (dir source) or workbook path (excel source)")
	serveCmd.Flags().StringArrayVarP(&serveCategories, "category", "c", nil, "Only serve this category (repeatable)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "Do not expose /metrics")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "Open the catalog in a browser after start")
}

func openURLInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
