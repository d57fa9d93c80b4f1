package v1

import (
	"net/http"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/usecase"
	"orderdesk-backend/pkg/utils"
)

type OrderHandler struct {
	orderUC  *usecase.OrderUsecase
	actionUC *usecase.ActionUsecase
}

func NewOrderHandler(orderUC *usecase.OrderUsecase, actionUC *usecase.ActionUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, actionUC: actionUC}
}

// GET /api/v1/orders?search=&tab=&page=&pageSize=
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tab, err := domain.ParseStatusTab(q.Get("tab"))
	if err != nil {
		writeUsecaseError(w, r, "list_orders", err)
		return
	}

	page, err := h.orderUC.ListOrders(r.Context(), domain.OrderQuery{
		Search:   q.Get("search"),
		Tab:      tab,
		Page:     utils.ParseInt(q.Get("page"), 1),
		PageSize: utils.ParseInt(q.Get("pageSize"), domain.DefaultPageSize),
	})
	if err != nil {
		writeUsecaseError(w, r, "list_orders", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

// POST /api/v1/orders/sync
func (h *OrderHandler) SyncUpstream(w http.ResponseWriter, r *http.Request) {
	res, err := h.orderUC.SyncUpstream(r.Context())
	if err != nil {
		writeUsecaseError(w, r, "sync_upstream", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUC.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, "get_order", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// GET /api/v1/orders/{id}/form returns the order pre-filled as an edit form.
func (h *OrderHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.orderUC.GetForm(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUsecaseError(w, r, "get_form", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, form)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var form domain.OrderForm
	if err := utils.DecodeJSON(r, maxJSONBody, &form); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.CreateOrder(r.Context(), &form)
	if err != nil {
		writeUsecaseError(w, r, "create_order", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var form domain.OrderForm
	if err := utils.DecodeJSON(r, maxJSONBody, &form); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUC.UpdateOrder(r.Context(), r.PathValue("id"), &form)
	if err != nil {
		writeUsecaseError(w, r, "update_order", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

// DELETE /api/v1/orders/{id}?confirm=true
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeUsecaseError(w, r, "delete_order", domain.ErrConfirmationMissing)
		return
	}
	if err := h.orderUC.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, "delete_order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/orders/{id}/actions
func (h *OrderHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req domain.ActionRequest
	if err := utils.DecodeJSON(r, maxJSONBody, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.actionUC.Dispatch(r.Context(), session, r.PathValue("id"), req)
	if err != nil {
		writeUsecaseError(w, r, "order_action", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}
