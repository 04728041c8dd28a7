// Package usecase implements the domain use cases: accounts, course views and progress updates.
package usecase

import (
	"context"
	"time"

	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// nowFunc overridden in tests
var nowFunc = time.Now

// degraded logs a failed page-load read, the view is rendered without it
func degraded(ctx context.Context, source string, err error) {
	logging.ExtractLoggerFromContext(ctx).Warn("Failed to load "+source,
		zap.String("error.message", err.Error()),
		zap.String("read.source", source),
	)
}
