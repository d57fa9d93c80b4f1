package domain

import (
	"fmt"
	"strings"
)

// OrderAction is a row-level command from the action menu.
type OrderAction string

const (
	ActionEditOrder   OrderAction = "editOrder"
	ActionCloneOrder  OrderAction = "cloneOrder"
	ActionDeleteOrder OrderAction = "deleteOrder"
	ActionAddTag      OrderAction = "addTag"
	ActionForwardShip OrderAction = "forwardShip"
	ActionReverseShip OrderAction = "reverseShip"
)

var OrderActions = []OrderAction{
	ActionEditOrder,
	ActionForwardShip,
	ActionReverseShip,
	ActionAddTag,
	ActionCloneOrder,
	ActionDeleteOrder,
}

func ParseOrderAction(s string) (OrderAction, error) {
	s = strings.TrimSpace(s)
	for _, a := range OrderActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, s)
}

// ActionRequest is the body of POST /orders/{id}/actions.
type ActionRequest struct {
	Action  OrderAction `json:"action"`
	Tag     string      `json:"tag,omitempty"`
	Confirm bool        `json:"confirm,omitempty"`
}

// ActionResult carries whatever the action produced.
type ActionResult struct {
	Action  OrderAction       `json:"action"`
	Message string            `json:"message"`
	Order   *Order            `json:"order,omitempty"`
	Form    *OrderForm        `json:"form,omitempty"`
	Return  *ReturnResultView `json:"return,omitempty"`
}
