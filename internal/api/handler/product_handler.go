package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aether-dashboard/aether-api/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	ID       string  `json:"id" validate:"max=255"`
	Name     string  `json:"name" validate:"max=255"`
	SKU      string  `json:"sku" validate:"max=255"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Price    string  `json:"price" validate:"max=50"`
	Status   string  `json:"status"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (r productRequest) input() ports.ProductInput {
	return ports.ProductInput{
		ID:       r.ID,
		Name:     r.Name,
		SKU:      r.SKU,
		Stock:    r.Stock,
		Price:    r.Price,
		Status:   r.Status,
		ImageURL: r.ImageURL,
	}
}

type createdProductResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// List returns every product.
//
// @Summary      List products
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  errorBody
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product.
//
// @Summary      Get a product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorBody
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product under a caller-supplied id.
//
// @Summary      Create a product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  createdProductResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.products.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdProductResponse{Message: "Product created", ID: product.ID})
}

// Update replaces a product's fields. Status is never derived from stock.
//
// @Summary      Update a product
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.products.Update(c.Request().Context(), c.Param("id"), req.input()); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Product updated")
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Product deleted")
}
