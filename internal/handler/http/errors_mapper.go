package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-school-agenda/internal/adapter"
	"github.com/MKhiriev/go-school-agenda/internal/service"
	"github.com/MKhiriev/go-school-agenda/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:      http.StatusBadRequest,
	service.ErrPINTooShort:              http.StatusBadRequest,
	service.ErrInvalidPeriod:            http.StatusBadRequest,
	service.ErrNoFileNameProvided:       http.StatusBadRequest,
	service.ErrMissingRemoteCredentials: http.StatusBadRequest,
	service.ErrWrongPIN:                 http.StatusUnauthorized,
	service.ErrTokenIsExpired:           http.StatusUnauthorized,
	service.ErrTaskNotFound:             http.StatusNotFound,
	service.ErrRemoteSyncFailed:         http.StatusBadGateway,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrInvalidFileName:   http.StatusBadRequest,
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrFileNotFound:      http.StatusNotFound,
	store.ErrLoadingRecords:    http.StatusInternalServerError,
	store.ErrSavingRecords:     http.StatusInternalServerError,
	store.ErrWritingFile:       http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:  http.StatusInternalServerError,
	store.ErrExecutingQuery:    http.StatusInternalServerError,
	store.ErrScanningRow:       http.StatusInternalServerError,

	adapter.ErrUnauthorized:       http.StatusBadGateway,
	adapter.ErrServiceUnavailable: http.StatusBadGateway,
	adapter.ErrConnection:         http.StatusBadGateway,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status with the root message. Internal
// failures are masked behind a generic status text.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(http.StatusInternalServerError)
	}
	http.Error(w, message, status)
}
