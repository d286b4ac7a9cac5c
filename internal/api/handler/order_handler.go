package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	ID       string `json:"id" validate:"max=255"`
	Customer string `json:"customer" validate:"max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
	Amount   string `json:"amount" validate:"max=50"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

type updateOrderRequest struct {
	Amount *string `json:"amount" validate:"omitempty,max=50"`
	Status *string `json:"status"`
	Date   *string `json:"date"`
}

// List returns one page of orders, newest date first.
//
// @Summary      List orders
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  ports.OrderPage
// @Failure      401    {object}  errorBody
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page := ports.PageRequest{
		Page:  intQuery(c, "page", ports.DefaultPage),
		Limit: intQuery(c, "limit", ports.DefaultLimit),
	}

	result, err := h.orders.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns one order joined with its customer.
//
// @Summary      Get an order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.OrderView
// @Failure      404  {object}  errorBody
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Create places an order, creating the customer when the email is unknown.
//
// @Summary      Create an order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      201   {object}  domain.OrderView
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orders.Create(c.Request().Context(), actor, ports.CreateOrderInput{
		ID:       req.ID,
		Customer: req.Customer,
		Email:    req.Email,
		Amount:   req.Amount,
		Status:   req.Status,
		Date:     req.Date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// Update changes amount, status or date. A status change notifies the caller.
//
// @Summary      Update an order
// @Tags         orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.orders.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateOrderInput{
		Amount: req.Amount,
		Status: req.Status,
		Date:   req.Date,
	})
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Order updated")
}

// Delete removes an order.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.orders.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Order deleted")
}

// History returns the audit trail of an order, oldest first.
//
// @Summary      Order audit trail
// @Tags         orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order id"
// @Success      200  {array}   domain.OrderEvent
// @Router       /api/orders/{id}/history [get]
func (h *OrderHandler) History(c echo.Context) error {
	events, err := h.orders.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
