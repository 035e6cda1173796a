package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Row models mirror the tables in migrations/. Money is stored as whole
// cents (bigint); quantities as int4.

type Product struct {
	ID          pgtype.UUID
	Name        string
	Slug        string
	PriceCents  int64
	IsAvailable bool
	CreatedAt   pgtype.Timestamptz
}

type Cart struct {
	ID           pgtype.UUID
	UserID       pgtype.UUID // null for anonymous carts
	SessionToken pgtype.Text // null for user carts
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type CartItem struct {
	ID        pgtype.UUID
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int32
	AddedAt   pgtype.Timestamptz
}

type PromoCode struct {
	ID                  pgtype.UUID
	Code                string
	DiscountPercent     int32
	DiscountAmountCents int64
	ValidFrom           pgtype.Timestamptz
	ValidTo             pgtype.Timestamptz
	IsActive            bool
	MaxUses             pgtype.Int4 // null means no ceiling
	UsedCount           int32
}

type Order struct {
	ID          pgtype.UUID
	OrderNumber string
	UserID      pgtype.UUID // null for anonymous checkouts
	Status      string

	FirstName string
	LastName  string
	Phone     string
	Email     string
	City      string
	Address   string
	ZipCode   string
	Comment   string

	SubtotalCents int64
	DeliveryCents int64
	DiscountCents int64
	TotalCents    int64
	PromoCode     string

	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type OrderItem struct {
	ID             pgtype.UUID
	OrderID        pgtype.UUID
	ProductID      pgtype.UUID
	ProductName    string
	Quantity       int32
	UnitPriceCents int64
}
