package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type CustomerHandler struct {
	customers ports.CustomerService
}

func NewCustomerHandler(customers ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type customerRequest struct {
	Name     string  `json:"name" validate:"max=255"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Location *string `json:"location" validate:"omitempty,max=255"`
	Status   string  `json:"status"`
	Avatar   *string `json:"avatar"`
}

func (r customerRequest) input() ports.CustomerInput {
	return ports.CustomerInput{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Location: r.Location,
		Status:   r.Status,
		Avatar:   r.Avatar,
	}
}

type createdCustomerResponse struct {
	Message  string           `json:"message"`
	ID       int64            `json:"id"`
	Customer *domain.Customer `json:"customer"`
}

// List returns every customer.
//
// @Summary      List customers
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   domain.Customer
// @Failure      401  {object}  errorBody
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Get returns one customer.
//
// @Summary      Get a customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorBody
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Create adds a customer. Status defaults to Active.
//
// @Summary      Create a customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      customerRequest  true  "Customer"
// @Success      201   {object}  createdCustomerResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdCustomerResponse{Message: "Customer created", ID: customer.ID, Customer: customer})
}

// Update replaces a customer's fields.
//
// @Summary      Update a customer
// @Tags         customers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}

	var req customerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.customers.Update(c.Request().Context(), id, req.input()); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Customer updated")
}

// Delete removes a customer together with its orders.
//
// @Summary      Delete a customer
// @Tags         customers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := int64Param(c, "id")
	if err != nil {
		return err
	}
	if err := h.customers.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Customer deleted")
}
