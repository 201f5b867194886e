package workers

import (
	"context"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the background workers enabled by cfg. A zero
// sync interval disables the periodic sync worker, leaving syncing to
// explicit API calls only.
func NewWorkers(ctx context.Context, services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.SyncInterval > 0 {
		ws.workers = append(ws.workers,
			NewSyncWorker(ctx, services.UserService, services.SyncService, cfg.SyncInterval, logger))
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
