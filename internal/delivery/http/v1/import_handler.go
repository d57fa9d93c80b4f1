package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"
)

type ImportHandler struct {
	importUC      *usecase.ImportUsecase
	maxUploadSize int64
}

func NewImportHandler(importUC *usecase.ImportUsecase, maxUploadSizeMB int64) *ImportHandler {
	return &ImportHandler{importUC: importUC, maxUploadSize: maxUploadSizeMB << 20}
}

// POST /api/v1/orders/import (multipart field "file")
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		logger.WithContext(r.Context()).Warn().Err(err).Msg("CSV import: ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		utils.WriteError(w, http.StatusBadRequest, "Only .csv files are accepted")
		return
	}

	res, err := h.importUC.ImportCSV(r.Context(), file, header.Filename)
	if err != nil {
		writeUsecaseError(w, r, "import_csv", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, res)
}
