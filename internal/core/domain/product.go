package domain

type ProductStatus string

const (
	ProductInStock    ProductStatus = "In Stock"
	ProductLowStock   ProductStatus = "Low Stock"
	ProductOutOfStock ProductStatus = "Out of Stock"
)

// Valid reports whether s is one of the known product statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductInStock, ProductLowStock, ProductOutOfStock:
		return true
	}
	return false
}

// Product is a catalogue item. ID is supplied by the caller; Status is set by
// the caller and never derived from Stock.
type Product struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	SKU      string        `json:"sku"`
	Stock    int           `json:"stock"`
	Price    string        `json:"price"`
	Status   ProductStatus `json:"status"`
	ImageURL *string       `json:"image_url"`
}
