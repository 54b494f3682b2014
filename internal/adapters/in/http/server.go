// Package http exposes the role gateways. Each staff station and the guest
// surface get their own route group over the same command and query handlers;
// the caller's tenant and role arrive as headers and all authorization beyond
// that lives in the domain.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableside/internal/coordination"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Header names carrying the caller identity. A fronting proxy is expected to
// authenticate the session and stamp these.
const (
	HeaderTenantID  = "X-Tenant-ID"
	HeaderActorRole = "X-Actor-Role"
)

// Server wires the role gateways to the application layer.
type Server struct {
	checkInHandler        commands.CheckInTableCommandHandler
	releaseHandler        commands.ReleaseTableCommandHandler
	placeOrderHandler     commands.PlaceOrderCommandHandler
	advanceHandler        commands.AdvanceOrderCommandHandler
	collectPaymentHandler commands.CollectPaymentCommandHandler

	getMenuHandler        queries.GetMenuQueryHandler
	getTableStatusHandler queries.GetTableStatusQueryHandler
	listOrdersHandler     queries.ListOrdersQueryHandler

	bus *coordination.Bus

	storageRetries int
	retryBackoff   time.Duration
}

// NewServer creates the gateway server. storageRetries is the number of times
// a storage failure is retried before surfacing 503; backoff grows linearly
// per attempt.
func NewServer(
	checkInHandler commands.CheckInTableCommandHandler,
	releaseHandler commands.ReleaseTableCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	advanceHandler commands.AdvanceOrderCommandHandler,
	collectPaymentHandler commands.CollectPaymentCommandHandler,
	getMenuHandler queries.GetMenuQueryHandler,
	getTableStatusHandler queries.GetTableStatusQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	bus *coordination.Bus,
	storageRetries int,
	retryBackoff time.Duration,
) *Server {
	return &Server{
		checkInHandler:        checkInHandler,
		releaseHandler:        releaseHandler,
		placeOrderHandler:     placeOrderHandler,
		advanceHandler:        advanceHandler,
		collectPaymentHandler: collectPaymentHandler,
		getMenuHandler:        getMenuHandler,
		getTableStatusHandler: getTableStatusHandler,
		listOrdersHandler:     listOrdersHandler,
		bus:                   bus,
		storageRetries:        storageRetries,
		retryBackoff:          retryBackoff,
	}
}

// RegisterRoutes mounts all gateways under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	// Guest surface.
	api.GET("/tables/:id/status", s.GetTableStatus)
	api.POST("/tables/:id/check-in", s.CheckInTable)
	api.POST("/tables/:id/release", s.ReleaseTable)
	api.GET("/menu", s.GetMenu)
	api.POST("/orders", s.PlaceOrder)
	api.GET("/events/stream", s.StreamEvents)

	// Staff stations.
	api.GET("/kitchen/orders", s.GetKitchenOrders)
	api.POST("/kitchen/orders/:id/advance", s.AdvanceOrder)
	api.GET("/waiter/orders", s.GetWaiterOrders)
	api.POST("/waiter/orders/:id/serve", s.ServeOrder)
	api.GET("/cashier/orders", s.GetCashierOrders)
	api.POST("/cashier/orders/:id/payment", s.CollectPayment)
}

func (s *Server) caller(ctx echo.Context) (kernel.Caller, error) {
	tenantID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderTenantID))
	if err != nil {
		return kernel.Caller{}, err
	}
	role, err := kernel.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return kernel.Caller{}, err
	}
	return kernel.NewCaller(tenantID, role)
}

// withRetry runs op, retrying storage failures with linear backoff. Any other
// error, and success, return immediately.
func (s *Server) withRetry(op func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op()
		if err == nil || !errors.Is(err, errs.ErrStorageUnavailable) {
			return err
		}
		if attempt >= s.storageRetries {
			return err
		}
		time.Sleep(s.retryBackoff * time.Duration(attempt+1))
	}
}

func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, errs.ErrScopeViolation):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrItemUnavailable):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrTableOccupied),
		errors.Is(err, errs.ErrOrderLocked):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrStorageUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

// GetTableStatus handles GET /api/v1/tables/:id/status.
func (s *Server) GetTableStatus(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetTableStatusQuery(tableID, caller)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var resp queries.GetTableStatusQueryResponse
	err = s.withRetry(func() error {
		var handleErr error
		resp, handleErr = s.getTableStatusHandler.Handle(ctx.Request().Context(), query)
		return handleErr
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TableStatusResponse{
		ID:           resp.ID.String(),
		Number:       resp.Number,
		Capacity:     resp.Capacity,
		Occupancy:    resp.Occupancy,
		OccupantName: resp.OccupantName,
	})
}

// CheckInTable handles POST /api/v1/tables/:id/check-in.
func (s *Server) CheckInTable(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CheckInRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCheckInTableCommand(tableID, caller, req.OccupantName)
	if err != nil {
		return errorResponse(ctx, err)
	}

	err = s.withRetry(func() error {
		return s.checkInHandler.Handle(ctx.Request().Context(), cmd)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseTable handles POST /api/v1/tables/:id/release.
func (s *Server) ReleaseTable(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	tableID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewReleaseTableCommand(tableID, caller)
	if err != nil {
		return errorResponse(ctx, err)
	}

	err = s.withRetry(func() error {
		return s.releaseHandler.Handle(ctx.Request().Context(), cmd)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetMenuQuery(caller)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var items []queries.GetMenuQueryResponse
	err = s.withRetry(func() error {
		var handleErr error
		items, handleErr = s.getMenuHandler.Handle(ctx.Request().Context(), query)
		return handleErr
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]MenuItemResponse, len(items))
	for i, item := range items {
		response[i] = MenuItemResponse{
			ID:          item.ID.String(),
			Category:    item.Category,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.String(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	tableID, err := kernel.UUIDFromString(req.TableID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	lines := make([]commands.RequestedLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		menuItemID, lineErr := kernel.UUIDFromString(line.MenuItemID)
		if lineErr != nil {
			return errorResponse(ctx, lineErr)
		}
		lines = append(lines, commands.RequestedLine{
			MenuItemID: menuItemID,
			Quantity:   line.Quantity,
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), tableID, caller, lines)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var placed *order.Order
	err = s.withRetry(func() error {
		var handleErr error
		placed, handleErr = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
		return handleErr
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(placed))
}

// GetKitchenOrders handles GET /api/v1/kitchen/orders.
func (s *Server) GetKitchenOrders(ctx echo.Context) error {
	return s.board(ctx, []order.Status{order.Placed, order.Preparing})
}

// GetWaiterOrders handles GET /api/v1/waiter/orders.
func (s *Server) GetWaiterOrders(ctx echo.Context) error {
	return s.board(ctx, []order.Status{order.Ready})
}

// GetCashierOrders handles GET /api/v1/cashier/orders.
func (s *Server) GetCashierOrders(ctx echo.Context) error {
	return s.board(ctx, []order.Status{order.Ready, order.Served})
}

func (s *Server) board(ctx echo.Context, statuses []order.Status) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(caller, statuses)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var boards []queries.ListOrdersQueryResponse
	err = s.withRetry(func() error {
		var handleErr error
		boards, handleErr = s.listOrdersHandler.Handle(ctx.Request().Context(), query)
		return handleErr
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderResponse, len(boards))
	for i, b := range boards {
		lines := make([]OrderLineResponse, len(b.Lines))
		for j, line := range b.Lines {
			lines[j] = OrderLineResponse{
				MenuItemID: line.MenuItemID.String(),
				Name:       line.Name,
				Quantity:   line.Quantity,
			}
		}
		response[i] = OrderResponse{
			ID:           b.ID.String(),
			TableID:      b.TableID.String(),
			OccupantName: b.OccupantName,
			Status:       b.Status,
			Total:        b.Total.String(),
			CreatedAt:    b.CreatedAt,
			Lines:        lines,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrder handles POST /api/v1/kitchen/orders/:id/advance.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	var req AdvanceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return s.advance(ctx, target)
}

// ServeOrder handles POST /api/v1/waiter/orders/:id/serve.
func (s *Server) ServeOrder(ctx echo.Context) error {
	return s.advance(ctx, order.Served)
}

func (s *Server) advance(ctx echo.Context, target order.Status) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, caller, target)
	if err != nil {
		return errorResponse(ctx, err)
	}

	err = s.withRetry(func() error {
		return s.advanceHandler.Handle(ctx.Request().Context(), cmd)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StreamEvents handles GET /api/v1/events/stream. Streams the caller tenant's
// coordination events as server-sent events until the client disconnects.
// Operators receive every tenant's events. Delivery is advisory; a board that
// misses an event still refreshes on the next bus tick.
func (s *Server) StreamEvents(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	tenant := caller.TenantID().String()
	if caller.IsOperator() {
		tenant = ""
	}
	events, cancel := s.bus.Subscribe(tenant)
	defer cancel()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			// Flush events already buffered before closing the stream.
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return nil
					}
					writeEvent(resp, event)
				default:
					return nil
				}
			}
		case event, ok := <-events:
			if !ok {
				return nil
			}
			writeEvent(resp, event)
		}
	}
}

func writeEvent(resp *echo.Response, event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", event.Kind, payload)
	resp.Flush()
}

// CollectPayment handles POST /api/v1/cashier/orders/:id/payment.
func (s *Server) CollectPayment(ctx echo.Context) error {
	caller, err := s.caller(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req CollectPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewCollectPaymentCommand(orderID, caller, commands.PaymentMethod(req.Method))
	if err != nil {
		return errorResponse(ctx, err)
	}

	err = s.withRetry(func() error {
		return s.collectPaymentHandler.Handle(ctx.Request().Context(), cmd)
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderToResponse(o *order.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLineResponse{
			MenuItemID: line.MenuItemID().String(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().String(),
		})
	}

	return OrderResponse{
		ID:           o.ID().String(),
		TableID:      o.TableID().String(),
		OccupantName: o.OccupantName(),
		Status:       o.Status().String(),
		Total:        o.Total().String(),
		CreatedAt:    o.CreatedAt(),
		Lines:        lines,
	}
}
