package service

import (
	"github.com/MKhiriev/go-school-agenda/internal/adapter"
	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/internal/store"
)

// Services aggregates every service the transport layer depends on.
type Services struct {
	UserService       UserService
	AgendaService     AgendaService
	StatusService     StatusService
	AttachmentService AttachmentService
	SyncService       SyncService
}

// NewServices wires the service layer. All services that mutate a
// user's profile share one lock registry, so overlay updates and sync
// runs for the same user are serialised regardless of which service
// they enter through.
func NewServices(storages *store.Storages, remotes adapter.Factory, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	locks := newUserLocks()

	return &Services{
		UserService:       NewUserService(storages.Users, storages.Files, cfg.App, logger),
		AgendaService:     NewAgendaService(storages.Records, locks, logger),
		StatusService:     NewStatusService(storages.Records, locks, logger),
		AttachmentService: NewAttachmentService(storages.Records, storages.Files, locks, logger),
		SyncService:       NewSyncService(storages.Users, storages.Records, remotes, cfg.Adapter, locks, logger),
	}
}
