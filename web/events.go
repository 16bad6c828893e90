package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxEventBytes = 4 << 10

// ImageOpened is sent by the catalog page when a visitor enlarges a product
// image.
type ImageOpened struct {
	Source string `json:"source"`
	Alt    string `json:"alt"`
}

// ImageObserver receives image-open notifications.
type ImageObserver interface {
	ImageOpened(ctx context.Context, event ImageOpened)
}

// ImageObserverFunc adapts a function to ImageObserver.
type ImageObserverFunc func(ctx context.Context, event ImageOpened)

func (f ImageObserverFunc) ImageOpened(ctx context.Context, event ImageOpened) {
	f(ctx, event)
}

func WithImageObserver(observer ImageObserver) ServerOption {
	return func(s *Server) {
		if observer != nil {
			s.imageObserver = observer
		}
	}
}

func logImageObserver(logger logrus.FieldLogger) ImageObserver {
	return ImageObserverFunc(func(_ context.Context, event ImageOpened) {
		logger.WithFields(logrus.Fields{
			"source": event.Source,
			"alt":    event.Alt,
		}).Debug("product image opened")
	})
}

func (s *Server) handleImageOpened(w http.ResponseWriter, r *http.Request) {
	var event ImageOpened
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEventBytes)).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event payload"})
		return
	}
	event.Source = strings.TrimSpace(event.Source)
	event.Alt = strings.TrimSpace(event.Alt)
	if event.Source == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source is required"})
		return
	}

	s.imageObserver.ImageOpened(r.Context(), event)
	w.WriteHeader(http.StatusNoContent)
}
