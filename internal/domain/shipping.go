package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShippingZone groups cities/countries that share shipping rates.
// All amounts in this package are whole FCFA (the currency has no minor unit).
type ShippingZone struct {
	ID        uuid.UUID
	Name      string
	Countries []string
	Cities    []string
	IsActive  bool
	Rates     []ShippingRate
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShippingRate is a priced shipping option owned by a zone.
type ShippingRate struct {
	ID                    uuid.UUID
	ZoneID                uuid.UUID
	Name                  string
	Price                 int64
	FreeShippingThreshold *int64
	MinOrderAmount        *int64
	DeliveryEstimate      string
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
