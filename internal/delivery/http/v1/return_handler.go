package v1

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type ReturnHandler struct {
	returnUC      *usecase.ReturnUsecase
	maxUploadSize int64
}

func NewReturnHandler(returnUC *usecase.ReturnUsecase, maxUploadSizeMB int64) *ReturnHandler {
	return &ReturnHandler{
		returnUC:      returnUC,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

// returnReq.Indices stays nil when the client sends no indices, which makes
// the usecase fall back to the stored selection.
type returnReq struct {
	Indices []int `json:"indices"`
}

type returnResp struct {
	Order  *domain.Order           `json:"order"`
	Result domain.ReturnResultView `json:"result"`
}

// POST /api/v1/orders/{id}/return
// Indices come from the JSON body, or from ?products=0,2 when there is none.
func (h *ReturnHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req returnReq
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Indices == nil {
		if raw := r.URL.Query().Get("products"); raw != "" {
			req.Indices = utils.ParseIndexList(raw)
		}
	}

	order, res, err := h.returnUC.RequestReturn(r.Context(), session, r.PathValue("id"), req.Indices)
	if err != nil {
		writeUsecaseError(w, r, "request_return", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, returnResp{
		Order:  order,
		Result: domain.ReturnResultView{OrderID: res.OrderID, Success: true, TrackingID: res.TrackingID},
	})
}

// POST /api/v1/returns/bulk
func (h *ReturnHandler) BulkReturn(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req usecase.BulkReturnRequest
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.returnUC.BulkReturn(r.Context(), session, req)
	if err != nil {
		writeUsecaseError(w, r, "bulk_return", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

// POST /api/v1/orders/{id}/tracking/refresh
func (h *ReturnHandler) RefreshTracking(w http.ResponseWriter, r *http.Request) {
	order, err := h.returnUC.RefreshTracking(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, "refresh_tracking", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// POST /api/v1/orders/{id}/products/{index}/image (multipart field "file")
func (h *ReturnHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context())

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product index")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		log.Warn().Err(err).Msg("Image upload: ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !utils.IsImage(contentType) {
		log.Warn().Str("content_type", contentType).Msg("Image upload: invalid MIME type")
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}
	if ext := strings.ToLower(filepath.Ext(header.Filename)); !allowedImageExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	order, err := h.returnUC.AttachProductImage(r.Context(), r.PathValue("id"), index, file, header.Filename)
	if err != nil {
		writeUsecaseError(w, r, "attach_product_image", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}
