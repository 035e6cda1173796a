package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/catalog"
	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/repository"
)

type cartService struct {
	repo    repository.Querier
	catalog catalog.Provider
}

// NewCartService creates a CartService over the repository and the
// catalog collaborator.
func NewCartService(repo repository.Querier, cat catalog.Provider) domain.CartService {
	return &cartService{
		repo:    repo,
		catalog: cat,
	}
}

// GetOrCreateCart resolves the single cart for an identity, creating an
// empty one on first use. A concurrent create for the same identity loses
// the unique-index race and resolves by re-reading the winner, keeping
// resolution idempotent.
func (s *cartService) GetOrCreateCart(ctx context.Context, ident domain.Identity) (*domain.Cart, error) {
	const op = "cart.resolve"

	if !ident.Valid() {
		return nil, domain.ErrIdentityRequired
	}

	cart, err := s.lookupCart(ctx, ident)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageErr(err, op)
	}

	params := repository.CreateCartParams{UserID: ident.UserID}
	if !ident.IsAuthenticated() {
		params.SessionToken = pgtype.Text{String: ident.SessionToken, Valid: true}
	}

	created, err := s.repo.CreateCart(ctx, params)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost the create race; the other request's cart is ours too.
			cart, rerr := s.lookupCart(ctx, ident)
			if rerr != nil {
				return nil, domain.WrapError(rerr, domain.ECONFLICT, op, domain.ErrIdentityConflict.Message)
			}
			return cart, nil
		}
		return nil, storageErr(err, op)
	}

	return toDomainCart(created), nil
}

// GetCart resolves an existing cart without creating one.
func (s *cartService) GetCart(ctx context.Context, ident domain.Identity) (*domain.Cart, error) {
	const op = "cart.get"

	if !ident.Valid() {
		return nil, domain.ErrIdentityRequired
	}

	cart, err := s.lookupCart(ctx, ident)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, storageErr(err, op)
	}
	return cart, nil
}

func (s *cartService) lookupCart(ctx context.Context, ident domain.Identity) (*domain.Cart, error) {
	var (
		row repository.Cart
		err error
	)
	if ident.IsAuthenticated() {
		row, err = s.repo.GetCartByUserID(ctx, ident.UserID)
	} else {
		row, err = s.repo.GetCartBySessionToken(ctx, ident.SessionToken)
	}
	if err != nil {
		return nil, err
	}
	return toDomainCart(row), nil
}

// AddItem adds a product to the cart. An existing line for the product is
// consolidated with a single atomic quantity increment, never duplicated.
func (s *cartService) AddItem(ctx context.Context, cartID, productID pgtype.UUID, quantity int32) (*domain.CartSummary, error) {
	const op = "cart.add_item"

	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, domain.ProductUnavailable(op, productID)
		}
		return nil, storageErr(err, op)
	}
	if !product.Purchasable {
		return nil, domain.ProductUnavailable(op, productID)
	}

	if _, err := s.repo.UpsertCartItem(ctx, repository.UpsertCartItemParams{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return nil, storageErr(err, op)
	}

	if err := s.repo.TouchCart(ctx, cartID); err != nil {
		return nil, storageErr(err, op)
	}

	return s.Summary(ctx, cartID)
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
// The repository enforces that the line belongs to the cart.
func (s *cartService) SetQuantity(ctx context.Context, cartID, lineID pgtype.UUID, quantity int32) (*domain.CartSummary, error) {
	const op = "cart.set_quantity"

	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, lineID)
	}

	affected, err := s.repo.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
		ID:       lineID,
		CartID:   cartID,
		Quantity: quantity,
	})
	if err != nil {
		return nil, storageErr(err, op)
	}
	if affected == 0 {
		return nil, domain.ErrLineNotFound
	}

	if err := s.repo.TouchCart(ctx, cartID); err != nil {
		return nil, storageErr(err, op)
	}

	return s.Summary(ctx, cartID)
}

// RemoveItem removes a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, cartID, lineID pgtype.UUID) (*domain.CartSummary, error) {
	const op = "cart.remove_item"

	affected, err := s.repo.DeleteCartItem(ctx, repository.DeleteCartItemParams{
		ID:     lineID,
		CartID: cartID,
	})
	if err != nil {
		return nil, storageErr(err, op)
	}
	if affected == 0 {
		return nil, domain.ErrLineNotFound
	}

	if err := s.repo.TouchCart(ctx, cartID); err != nil {
		return nil, storageErr(err, op)
	}

	return s.Summary(ctx, cartID)
}

// Summary returns the cart with lines and totals. Each call re-resolves
// the products' current prices; nothing is cached on the lines, so totals
// track catalog price changes until checkout snapshots them.
func (s *cartService) Summary(ctx context.Context, cartID pgtype.UUID) (*domain.CartSummary, error) {
	const op = "cart.summary"

	cart, err := s.repo.GetCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, storageErr(err, op)
	}

	items, err := s.repo.ListCartItems(ctx, cartID)
	if err != nil {
		return nil, storageErr(err, op)
	}

	lines := make([]domain.CartLine, 0, len(items))
	var itemCount int32
	var total int64

	for _, item := range items {
		lineSubtotal := int64(item.Quantity) * item.PriceCents
		itemCount += item.Quantity
		total += lineSubtotal

		lines = append(lines, domain.CartLine{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.PriceCents,
			LineSubtotal:   lineSubtotal,
		})
	}

	return &domain.CartSummary{
		Cart:       *toDomainCart(cart),
		Lines:      lines,
		ItemCount:  itemCount,
		TotalCents: total,
	}, nil
}

// Clear removes all lines from a cart.
func (s *cartService) Clear(ctx context.Context, cartID pgtype.UUID) error {
	if err := s.repo.ClearCart(ctx, cartID); err != nil {
		return storageErr(err, "cart.clear")
	}
	return nil
}

func toDomainCart(row repository.Cart) *domain.Cart {
	return &domain.Cart{
		ID:           row.ID,
		UserID:       row.UserID,
		SessionToken: row.SessionToken,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
