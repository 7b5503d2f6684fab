package finder

import (
	"context"

	"tamirciBul/internal/models"
)

// Directory is the slice of the directory client the finder needs.
type Directory interface {
	Search(ctx context.Context, q models.SearchQuery) (models.ResultPage, error)
}

// Logger is a minimal logger interface required by the orchestrator.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Notifier receives typed events for the presentation layer.
type Notifier interface {
	Publish(n models.Notification)
}
