package domain

import "time"

// StatsOrder is the slice of an order the stats aggregator needs.
type StatsOrder struct {
	Amount string
	Status OrderStatus
	Date   time.Time
}

// StatsSnapshot is everything read from the store for one stats call. All of
// it comes from a single consistent read.
type StatsSnapshot struct {
	// Orders dated on or after the start of the previous window.
	Orders          []StatsOrder
	CustomersTotal  int64
	CustomersActive int64
	ProductsTotal   int64
	ProductsInStock int64
}

type RevenueStats struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Trend    float64 `json:"trend"`
}

type OrderStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type CustomerStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

type ProductStats struct {
	Total   int64 `json:"total"`
	InStock int64 `json:"inStock"`
}

type StatsPeriod struct {
	Days int    `json:"days"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Stats is the dashboard payload.
type Stats struct {
	Revenue   RevenueStats  `json:"revenue"`
	Orders    OrderStats    `json:"orders"`
	Customers CustomerStats `json:"customers"`
	Products  ProductStats  `json:"products"`
	Period    StatsPeriod   `json:"period"`
}
