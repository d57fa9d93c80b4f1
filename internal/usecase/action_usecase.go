package usecase

import (
	"context"
	"fmt"
	"strings"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"
)

// ActionUsecase runs the row-level commands of the order table.
type ActionUsecase struct {
	orders  *OrderUsecase
	returns *ReturnUsecase
}

func NewActionUsecase(orders *OrderUsecase, returns *ReturnUsecase) *ActionUsecase {
	return &ActionUsecase{orders: orders, returns: returns}
}

func (u *ActionUsecase) Dispatch(ctx context.Context, session *domain.Session, orderID string, req domain.ActionRequest) (*domain.ActionResult, error) {
	action, err := domain.ParseOrderAction(string(req.Action))
	if err != nil {
		return nil, err
	}
	res := &domain.ActionResult{Action: action}

	switch action {
	case domain.ActionEditOrder:
		form, err := u.orders.GetForm(ctx, orderID)
		if err != nil {
			return nil, err
		}
		res.Form = form
		res.Message = "Edit form ready"

	case domain.ActionCloneOrder:
		clone, err := u.orders.CloneOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		res.Order = clone
		res.Message = fmt.Sprintf("Order cloned as %s", clone.OrderID)

	case domain.ActionDeleteOrder:
		if !req.Confirm {
			return nil, domain.ErrConfirmationMissing
		}
		if err := u.orders.DeleteOrder(ctx, orderID); err != nil {
			return nil, err
		}
		res.Message = "Order deleted"

	case domain.ActionAddTag:
		o, err := u.orders.AddTag(ctx, orderID, strings.TrimSpace(req.Tag))
		if err != nil {
			return nil, err
		}
		res.Order = o
		res.Message = fmt.Sprintf("Tag %q added", o.Tag)

	case domain.ActionForwardShip:
		o, err := u.orders.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		logger.WithContext(ctx).Info().
			Str("order_id", o.OrderID).
			Str("user", session.Email).
			Msg("Forward shipment requested")
		res.Order = o
		res.Message = "Forward shipment acknowledged"

	case domain.ActionReverseShip:
		o, result, err := u.returns.RequestReturn(ctx, session, orderID, nil)
		if err != nil {
			return nil, err
		}
		res.Order = o
		res.Return = &domain.ReturnResultView{OrderID: result.OrderID, Success: true, TrackingID: result.TrackingID}
		res.Message = "Return requested"
	}

	return res, nil
}
