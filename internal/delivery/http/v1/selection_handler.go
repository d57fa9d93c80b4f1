package v1

import (
	"net/http"
	"strconv"

	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/utils"
)

// SelectionHandler exposes the operator's checked orders and products. Every
// endpoint answers with the current selection view.
type SelectionHandler struct {
	selections *usecase.SelectionUsecase
}

func NewSelectionHandler(selections *usecase.SelectionUsecase) *SelectionHandler {
	return &SelectionHandler{selections: selections}
}

type checkedReq struct {
	Checked bool `json:"checked"`
}

type productsReq struct {
	Indices []int `json:"indices"`
}

func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.selections.View(session))
}

func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	h.selections.Clear(session)
	utils.WriteJSON(w, http.StatusOK, h.selections.View(session))
}

// PUT /api/v1/selection/orders/{id}
func (h *SelectionHandler) SetOrderChecked(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req checkedReq
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.selections.SetOrderChecked(session, r.PathValue("id"), req.Checked)
	utils.WriteJSON(w, http.StatusOK, h.selections.View(session))
}

// PUT /api/v1/selection/orders/{id}/products
func (h *SelectionHandler) SetProducts(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req productsReq
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.selections.SetProducts(session, r.PathValue("id"), req.Indices)
	utils.WriteJSON(w, http.StatusOK, h.selections.View(session))
}

// PUT /api/v1/selection/orders/{id}/products/{index}
func (h *SelectionHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product index")
		return
	}
	var req checkedReq
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.selections.ToggleProduct(session, r.PathValue("id"), index, req.Checked)
	utils.WriteJSON(w, http.StatusOK, h.selections.View(session))
}
