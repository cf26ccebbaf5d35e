// Package http exposes the order platform over a REST API.
// Every response body is wrapped in the {success, data, message} envelope.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/item"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	changeStatusHandler commands.ChangeOrderStatusCommandHandler

	getAllOrdersHandler queries.GetAllOrdersQueryHandler
	getOrderHandler     queries.GetOrderQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		changeStatusHandler: changeStatusHandler,
		getAllOrdersHandler: getAllOrdersHandler,
		getOrderHandler:     getOrderHandler,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	api := e.Group("/api")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := ctx.Validate(&request); err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	itemRequests := make([]commands.ItemRequest, 0, len(request.Items))
	for _, line := range request.Items {
		category, err := item.CategoryFromString(line.Category)
		if err != nil {
			return fail(ctx, http.StatusBadRequest, err.Error())
		}

		itemRequest, err := commands.NewItemRequest(line.MenuItemID, category, line.Attributes)
		if err != nil {
			return fail(ctx, http.StatusBadRequest, err.Error())
		}
		itemRequests = append(itemRequests, itemRequest)
	}

	cmd, err := commands.NewCreateOrderCommand(request.UserID, itemRequests)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, statusFor(err), err.Error())
	}

	return ok(ctx, http.StatusCreated, orderToResponse(created), "order created")
}

// GetOrders handles GET /api/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	summaries, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return fail(ctx, statusFor(err), err.Error())
	}

	return ok(ctx, http.StatusOK, summaries, "")
}

// GetOrder handles GET /api/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	summary, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, statusFor(err), err.Error())
	}

	return ok(ctx, http.StatusOK, summary, "")
}

// ChangeOrderStatus handles POST /api/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	id, err := orderID(ctx)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid order id")
	}

	var request ChangeOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return fail(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err = ctx.Validate(&request); err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, next, request.PaymentTransactionID)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	updated, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, statusFor(err), err.Error())
	}

	return ok(ctx, http.StatusOK, orderToResponse(updated), "order status updated")
}

func orderID(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}

func ok(ctx echo.Context, status int, data any, message string) error {
	return ctx.JSON(status, APIResponse{Success: true, Data: data, Message: message})
}

func fail(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, APIResponse{Success: false, Message: message})
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	var validationErrors validator.ValidationErrors

	switch {
	case errors.Is(err, ports.ErrUserNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrOrderIsImmutable),
		errors.Is(err, order.ErrItemMutationNotAllowed),
		errors.Is(err, order.ErrPaymentTransactionAlreadySet):
		return http.StatusConflict
	case errors.Is(err, item.ErrUnsupportedCategory):
		// an enumerated category without a factory mapping is a server defect
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.As(err, &validationErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
