package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/repository"
)

type checkoutService struct {
	store    repository.Store
	validate *validator.Validate
	now      func() time.Time
}

// NewCheckoutService creates the order assembler. It needs a Store rather
// than a plain Querier because the whole conversion runs in one
// transaction.
func NewCheckoutService(store repository.Store) domain.CheckoutService {
	return &checkoutService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// Checkout converts the cart into an order inside a single transaction:
//
//  1. row-lock the cart, then load its lines; empty cart aborts
//  2. re-check purchasability per line; a stale line aborts with the
//     offending product
//  3. snapshot live unit prices into order lines, sum the subtotal
//  4. if a promo code was supplied, row-lock it, re-validate against the
//     subtotal and consume one use under the same lock; any rejection
//     aborts the checkout rather than silently dropping the code
//  5. total = subtotal - discount + delivery, clamped at zero
//  6. persist the order and its lines, then clear the cart
//
// A failure at any step rolls the whole unit back: no order rows, no
// usage-counter increment, no cleared cart. The cart itself survives
// checkout; only its lines are removed, which is also what makes a replay
// of the same request fail fast with EmptyCart.
func (s *checkoutService) Checkout(ctx context.Context, params domain.CheckoutParams) (*domain.OrderDetail, error) {
	const op = "checkout"

	if err := s.validate.Struct(params.Contact); err != nil {
		return nil, domain.WrapError(err, domain.EINVALID, op, "Invalid contact information")
	}
	if params.DeliveryCents < 0 {
		return nil, domain.Invalid(op, "Delivery cost cannot be negative")
	}
	promoCode := strings.TrimSpace(params.PromoCode)

	var detail *domain.OrderDetail

	err := s.store.ExecTx(ctx, func(ctx context.Context, q repository.Querier) error {
		// Row-lock the cart first. A concurrent checkout of the same cart
		// waits here, then sees the cleared lines and fails with EmptyCart
		// instead of producing a second order.
		cart, err := q.GetCartByIDForUpdate(ctx, params.CartID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCartNotFound
			}
			return err
		}

		items, err := q.ListCartItems(ctx, params.CartID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		var subtotal int64
		for _, item := range items {
			if !item.IsAvailable {
				return domain.ProductUnavailable(op, item.ProductID)
			}
			subtotal += int64(item.Quantity) * item.PriceCents
		}

		var discount int64
		var redeemedCode string
		if promoCode != "" {
			discount, redeemedCode, err = s.redeemPromo(ctx, q, promoCode, subtotal)
			if err != nil {
				return err
			}
		}

		total := subtotal - discount + params.DeliveryCents
		if total < 0 {
			total = 0
		}

		number, err := generateOrderNumber()
		if err != nil {
			return err
		}

		order, err := q.CreateOrder(ctx, repository.CreateOrderParams{
			OrderNumber: number,
			UserID:      cart.UserID,
			Status:      string(domain.StatusNew),

			FirstName: params.Contact.FirstName,
			LastName:  params.Contact.LastName,
			Phone:     params.Contact.Phone,
			Email:     params.Contact.Email,
			City:      params.Contact.City,
			Address:   params.Contact.Address,
			ZipCode:   params.Contact.ZipCode,
			Comment:   params.Contact.Comment,

			SubtotalCents: subtotal,
			DeliveryCents: params.DeliveryCents,
			DiscountCents: discount,
			TotalCents:    total,
			PromoCode:     redeemedCode,
		})
		if err != nil {
			return err
		}

		lines := make([]domain.OrderLine, 0, len(items))
		for _, item := range items {
			created, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
				OrderID:        order.ID,
				ProductID:      item.ProductID,
				ProductName:    item.ProductName,
				Quantity:       item.Quantity,
				UnitPriceCents: item.PriceCents,
			})
			if err != nil {
				return err
			}
			lines = append(lines, toDomainOrderLine(created))
		}

		if err := q.ClearCart(ctx, params.CartID); err != nil {
			return err
		}

		detail = &domain.OrderDetail{
			Order: toDomainOrder(order),
			Lines: lines,
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err, op)
	}

	return detail, nil
}

// redeemPromo re-validates the code against the subtotal and consumes one
// use, all under the row lock taken by GetPromoCodeForUpdate. The guarded
// increment is the final word on the usage ceiling: two concurrent
// checkouts of a one-use code serialize on the lock and the second sees
// the consumed count.
func (s *checkoutService) redeemPromo(ctx context.Context, q repository.Querier, code string, subtotal int64) (int64, string, error) {
	const op = "checkout.redeem_promo"

	row, err := q.GetPromoCodeForUpdate(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", domain.InvalidPromoCode(op, domain.PromoNotFound)
		}
		return 0, "", err
	}

	promo := toDomainPromo(row)
	if !promo.IsValid(s.now()) {
		return 0, "", domain.InvalidPromoCode(op, domain.PromoExpiredOrExhausted)
	}

	affected, err := q.IncrementPromoCodeUsage(ctx, row.ID)
	if err != nil {
		return 0, "", err
	}
	if affected == 0 {
		return 0, "", domain.InvalidPromoCode(op, domain.PromoExpiredOrExhausted)
	}

	return promo.DiscountFor(subtotal), promo.Code, nil
}

// generateOrderNumber builds an order number of the form ORD-XXXXXXXXXXXX
// from crypto-random bytes. Numbers must not be guessable or sequential;
// the unique index on order_number catches a collision.
func generateOrderNumber() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return "ORD-" + strings.ToUpper(hex.EncodeToString(b)), nil
}

func toDomainOrder(row repository.Order) domain.Order {
	return domain.Order{
		ID:          row.ID,
		OrderNumber: row.OrderNumber,
		UserID:      row.UserID,
		Status:      domain.OrderStatus(row.Status),

		Contact: domain.ContactInfo{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Phone:     row.Phone,
			Email:     row.Email,
			City:      row.City,
			Address:   row.Address,
			ZipCode:   row.ZipCode,
			Comment:   row.Comment,
		},

		SubtotalCents: row.SubtotalCents,
		DeliveryCents: row.DeliveryCents,
		DiscountCents: row.DiscountCents,
		TotalCents:    row.TotalCents,
		PromoCode:     row.PromoCode,

		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func toDomainOrderLine(row repository.OrderItem) domain.OrderLine {
	return domain.OrderLine{
		ID:             row.ID,
		ProductID:      row.ProductID,
		ProductName:    row.ProductName,
		Quantity:       row.Quantity,
		UnitPriceCents: row.UnitPriceCents,
		TotalCents:     int64(row.Quantity) * row.UnitPriceCents,
	}
}
