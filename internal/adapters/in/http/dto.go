package http

import "time"

// Error is the JSON error envelope returned by every gateway.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckInRequest is the body of POST /api/v1/tables/:id/check-in.
type CheckInRequest struct {
	OccupantName string `json:"occupant_name"`
}

// TableStatusResponse is the body of GET /api/v1/tables/:id/status.
type TableStatusResponse struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	Capacity     int    `json:"capacity"`
	Occupancy    string `json:"occupancy"`
	OccupantName string `json:"occupant_name,omitempty"`
}

// MenuItemResponse is one item of GET /api/v1/menu.
type MenuItemResponse struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	TableID string             `json:"table_id"`
	Lines   []OrderLineRequest `json:"lines"`
}

// OrderLineRequest is one requested line of a new order.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// AdvanceOrderRequest is the body of POST /api/v1/kitchen/orders/:id/advance.
type AdvanceOrderRequest struct {
	Target string `json:"target"`
}

// CollectPaymentRequest is the body of POST /api/v1/cashier/orders/:id/payment.
type CollectPaymentRequest struct {
	Method string `json:"method"`
}

// OrderResponse is an order as seen by the boards and the placement response.
type OrderResponse struct {
	ID           string              `json:"id"`
	TableID      string              `json:"table_id"`
	OccupantName string              `json:"occupant_name,omitempty"`
	Status       string              `json:"status"`
	Total        string              `json:"total"`
	CreatedAt    time.Time           `json:"created_at"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
}

// OrderLineResponse is one line of a board order.
type OrderLineResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price,omitempty"`
}
