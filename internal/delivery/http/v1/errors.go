package v1

import (
	"errors"
	"net/http"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"
)

const maxJSONBody = 1 << 20

// statusFor maps usecase errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateOrder), errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrReturnInProgress), errors.Is(err, domain.ErrUpstreamReadOnly):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoProductsSelected), errors.Is(err, domain.ErrNoOrdersSelected),
		errors.Is(err, domain.ErrNoTrackingID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConfirmationMissing), errors.Is(err, domain.ErrProductIndex),
		errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrCarrierRejected), errors.Is(err, domain.ErrCarrierUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeUsecaseError logs the failure once and writes {"error": msg}. Validation
// and duplicate errors also carry their details.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)

	log := logger.WithContext(r.Context())
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("op", op).Int("status", status).Msg("Request failed")

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		utils.WriteJSON(w, status, map[string]interface{}{"error": msg, "fields": ve.Fields})
		return
	}
	var de *domain.DuplicateOrdersError
	if errors.As(err, &de) {
		utils.WriteJSON(w, status, map[string]interface{}{"error": msg, "duplicates": de.OrderIDs})
		return
	}
	utils.WriteError(w, status, msg)
}

func sessionFrom(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	session, ok := domain.SessionFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return session, true
}
