package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/repository"
)

// fakeStore is an in-memory repository.Store. It mirrors the SQL layer's
// semantics closely enough for service tests: unique cart identities fail
// with a 23505-coded error, the cart-item upsert consolidates on
// (cart, product), the usage increment is guarded by the ceiling, and
// ExecTx restores a pre-transaction snapshot when fn fails. The store
// mutex also serializes transactions the way row locks do.
type fakeStore struct {
	mu    sync.Mutex
	state *fakeState
}

type fakeState struct {
	products   map[[16]byte]repository.Product
	carts      []repository.Cart
	cartItems  []repository.CartItem
	promos     []repository.PromoCode
	orders     []repository.Order
	orderItems []repository.OrderItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: &fakeState{
		products: make(map[[16]byte]repository.Product),
	}}
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func nowTS() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

// Seed helpers, called from tests before exercising the services.

func (f *fakeStore) addProduct(name string, priceCents int64, available bool) repository.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := repository.Product{
		ID:          newID(),
		Name:        name,
		Slug:        name,
		PriceCents:  priceCents,
		IsAvailable: available,
		CreatedAt:   nowTS(),
	}
	f.state.products[p.ID.Bytes] = p
	return p
}

func (f *fakeStore) setProductAvailable(id pgtype.UUID, available bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.state.products[id.Bytes]
	p.IsAvailable = available
	f.state.products[id.Bytes] = p
}

func (f *fakeStore) setProductPrice(id pgtype.UUID, priceCents int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.state.products[id.Bytes]
	p.PriceCents = priceCents
	f.state.products[id.Bytes] = p
}

func (f *fakeStore) addPromo(p repository.PromoCode) repository.PromoCode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !p.ID.Valid {
		p.ID = newID()
	}
	f.state.promos = append(f.state.promos, p)
	return p
}

func (f *fakeStore) promoUsedCount(code string) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.state.promos {
		if p.Code == code {
			return p.UsedCount
		}
	}
	return -1
}

// clone deep-copies the mutable state for transaction rollback.
func (st *fakeState) clone() *fakeState {
	cp := &fakeState{
		products:   make(map[[16]byte]repository.Product, len(st.products)),
		carts:      append([]repository.Cart(nil), st.carts...),
		cartItems:  append([]repository.CartItem(nil), st.cartItems...),
		promos:     append([]repository.PromoCode(nil), st.promos...),
		orders:     append([]repository.Order(nil), st.orders...),
		orderItems: append([]repository.OrderItem(nil), st.orderItems...),
	}
	for k, v := range st.products {
		cp.products[k] = v
	}
	return cp
}

// ExecTx implements repository.Store. Holding the mutex for the whole
// transaction mirrors the serialization the SQL layer gets from FOR UPDATE
// row locks.
func (f *fakeStore) ExecTx(ctx context.Context, fn func(context.Context, repository.Querier) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := f.state.clone()
	if err := fn(ctx, &txQuerier{state: f.state}); err != nil {
		f.state = snapshot
		return err
	}
	return nil
}

// txQuerier exposes the state to a transaction body without re-locking.
type txQuerier struct {
	state *fakeState
}

// Locked wrappers: the public Querier surface of the store.

func (f *fakeStore) GetCartByID(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getCartByID(id)
}

func (f *fakeStore) GetCartByIDForUpdate(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getCartByID(id)
}

func (f *fakeStore) GetCartByUserID(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getCartByUserID(userID)
}

func (f *fakeStore) GetCartBySessionToken(ctx context.Context, token string) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getCartBySessionToken(token)
}

func (f *fakeStore) CreateCart(ctx context.Context, arg repository.CreateCartParams) (repository.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.createCart(arg)
}

func (f *fakeStore) TouchCart(ctx context.Context, id pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.touchCart(id)
}

func (f *fakeStore) UpsertCartItem(ctx context.Context, arg repository.UpsertCartItemParams) (repository.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.upsertCartItem(arg)
}

func (f *fakeStore) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.updateCartItemQuantity(arg)
}

func (f *fakeStore) DeleteCartItem(ctx context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.deleteCartItem(arg)
}

func (f *fakeStore) ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.ListCartItemsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.listCartItems(cartID)
}

func (f *fakeStore) ClearCart(ctx context.Context, cartID pgtype.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clearCart(cartID)
}

func (f *fakeStore) GetPromoCodeByCode(ctx context.Context, code string) (repository.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getPromoCodeByCode(code)
}

func (f *fakeStore) GetPromoCodeForUpdate(ctx context.Context, code string) (repository.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getPromoCodeByCode(code)
}

func (f *fakeStore) IncrementPromoCodeUsage(ctx context.Context, id pgtype.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.incrementPromoCodeUsage(id)
}

func (f *fakeStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.createOrder(arg)
}

func (f *fakeStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.createOrderItem(arg)
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id pgtype.UUID) (repository.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getOrderByID(id)
}

func (f *fakeStore) GetOrderByNumber(ctx context.Context, orderNumber string) (repository.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getOrderByNumber(orderNumber)
}

func (f *fakeStore) ListOrdersByUserID(ctx context.Context, userID pgtype.UUID) ([]repository.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.listOrdersByUserID(userID)
}

func (f *fakeStore) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]repository.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getOrderItems(orderID)
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.updateOrderStatus(arg)
}

func (f *fakeStore) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.getProductByID(id)
}

// Unlocked delegates for transaction bodies.

func (q *txQuerier) GetCartByID(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	return q.state.getCartByID(id)
}

func (q *txQuerier) GetCartByIDForUpdate(ctx context.Context, id pgtype.UUID) (repository.Cart, error) {
	return q.state.getCartByID(id)
}

func (q *txQuerier) GetCartByUserID(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	return q.state.getCartByUserID(userID)
}

func (q *txQuerier) GetCartBySessionToken(ctx context.Context, token string) (repository.Cart, error) {
	return q.state.getCartBySessionToken(token)
}

func (q *txQuerier) CreateCart(ctx context.Context, arg repository.CreateCartParams) (repository.Cart, error) {
	return q.state.createCart(arg)
}

func (q *txQuerier) TouchCart(ctx context.Context, id pgtype.UUID) error {
	return q.state.touchCart(id)
}

func (q *txQuerier) UpsertCartItem(ctx context.Context, arg repository.UpsertCartItemParams) (repository.CartItem, error) {
	return q.state.upsertCartItem(arg)
}

func (q *txQuerier) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (int64, error) {
	return q.state.updateCartItemQuantity(arg)
}

func (q *txQuerier) DeleteCartItem(ctx context.Context, arg repository.DeleteCartItemParams) (int64, error) {
	return q.state.deleteCartItem(arg)
}

func (q *txQuerier) ListCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.ListCartItemsRow, error) {
	return q.state.listCartItems(cartID)
}

func (q *txQuerier) ClearCart(ctx context.Context, cartID pgtype.UUID) error {
	return q.state.clearCart(cartID)
}

func (q *txQuerier) GetPromoCodeByCode(ctx context.Context, code string) (repository.PromoCode, error) {
	return q.state.getPromoCodeByCode(code)
}

func (q *txQuerier) GetPromoCodeForUpdate(ctx context.Context, code string) (repository.PromoCode, error) {
	return q.state.getPromoCodeByCode(code)
}

func (q *txQuerier) IncrementPromoCodeUsage(ctx context.Context, id pgtype.UUID) (int64, error) {
	return q.state.incrementPromoCodeUsage(id)
}

func (q *txQuerier) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	return q.state.createOrder(arg)
}

func (q *txQuerier) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	return q.state.createOrderItem(arg)
}

func (q *txQuerier) GetOrderByID(ctx context.Context, id pgtype.UUID) (repository.Order, error) {
	return q.state.getOrderByID(id)
}

func (q *txQuerier) GetOrderByNumber(ctx context.Context, orderNumber string) (repository.Order, error) {
	return q.state.getOrderByNumber(orderNumber)
}

func (q *txQuerier) ListOrdersByUserID(ctx context.Context, userID pgtype.UUID) ([]repository.Order, error) {
	return q.state.listOrdersByUserID(userID)
}

func (q *txQuerier) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]repository.OrderItem, error) {
	return q.state.getOrderItems(orderID)
}

func (q *txQuerier) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	return q.state.updateOrderStatus(arg)
}

func (q *txQuerier) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	return q.state.getProductByID(id)
}

var (
	_ repository.Store   = (*fakeStore)(nil)
	_ repository.Querier = (*txQuerier)(nil)
)

// State operations.

func (st *fakeState) getCartByID(id pgtype.UUID) (repository.Cart, error) {
	for _, c := range st.carts {
		if c.ID.Bytes == id.Bytes {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (st *fakeState) getCartByUserID(userID pgtype.UUID) (repository.Cart, error) {
	for _, c := range st.carts {
		if c.UserID.Valid && c.UserID.Bytes == userID.Bytes {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (st *fakeState) getCartBySessionToken(token string) (repository.Cart, error) {
	for _, c := range st.carts {
		if c.SessionToken.Valid && c.SessionToken.String == token {
			return c, nil
		}
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (st *fakeState) createCart(arg repository.CreateCartParams) (repository.Cart, error) {
	for _, c := range st.carts {
		if arg.UserID.Valid && c.UserID.Valid && c.UserID.Bytes == arg.UserID.Bytes {
			return repository.Cart{}, uniqueViolation()
		}
		if arg.SessionToken.Valid && c.SessionToken.Valid && c.SessionToken.String == arg.SessionToken.String {
			return repository.Cart{}, uniqueViolation()
		}
	}

	c := repository.Cart{
		ID:           newID(),
		UserID:       arg.UserID,
		SessionToken: arg.SessionToken,
		CreatedAt:    nowTS(),
		UpdatedAt:    nowTS(),
	}
	st.carts = append(st.carts, c)
	return c, nil
}

func (st *fakeState) touchCart(id pgtype.UUID) error {
	for i := range st.carts {
		if st.carts[i].ID.Bytes == id.Bytes {
			st.carts[i].UpdatedAt = nowTS()
		}
	}
	return nil
}

func (st *fakeState) upsertCartItem(arg repository.UpsertCartItemParams) (repository.CartItem, error) {
	for i := range st.cartItems {
		item := &st.cartItems[i]
		if item.CartID.Bytes == arg.CartID.Bytes && item.ProductID.Bytes == arg.ProductID.Bytes {
			item.Quantity += arg.Quantity
			return *item, nil
		}
	}

	item := repository.CartItem{
		ID:        newID(),
		CartID:    arg.CartID,
		ProductID: arg.ProductID,
		Quantity:  arg.Quantity,
		AddedAt:   nowTS(),
	}
	st.cartItems = append(st.cartItems, item)
	return item, nil
}

func (st *fakeState) updateCartItemQuantity(arg repository.UpdateCartItemQuantityParams) (int64, error) {
	for i := range st.cartItems {
		item := &st.cartItems[i]
		if item.ID.Bytes == arg.ID.Bytes && item.CartID.Bytes == arg.CartID.Bytes {
			item.Quantity = arg.Quantity
			return 1, nil
		}
	}
	return 0, nil
}

func (st *fakeState) deleteCartItem(arg repository.DeleteCartItemParams) (int64, error) {
	for i := range st.cartItems {
		item := st.cartItems[i]
		if item.ID.Bytes == arg.ID.Bytes && item.CartID.Bytes == arg.CartID.Bytes {
			st.cartItems = append(st.cartItems[:i], st.cartItems[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (st *fakeState) listCartItems(cartID pgtype.UUID) ([]repository.ListCartItemsRow, error) {
	var rows []repository.ListCartItemsRow
	for _, item := range st.cartItems {
		if item.CartID.Bytes != cartID.Bytes {
			continue
		}
		p := st.products[item.ProductID.Bytes]
		rows = append(rows, repository.ListCartItemsRow{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: p.Name,
			PriceCents:  p.PriceCents,
			IsAvailable: p.IsAvailable,
			Quantity:    item.Quantity,
		})
	}
	return rows, nil
}

func (st *fakeState) clearCart(cartID pgtype.UUID) error {
	var kept []repository.CartItem
	for _, item := range st.cartItems {
		if item.CartID.Bytes != cartID.Bytes {
			kept = append(kept, item)
		}
	}
	st.cartItems = kept
	return nil
}

func (st *fakeState) getPromoCodeByCode(code string) (repository.PromoCode, error) {
	for _, p := range st.promos {
		if p.Code == code {
			return p, nil
		}
	}
	return repository.PromoCode{}, pgx.ErrNoRows
}

func (st *fakeState) incrementPromoCodeUsage(id pgtype.UUID) (int64, error) {
	for i := range st.promos {
		p := &st.promos[i]
		if p.ID.Bytes != id.Bytes {
			continue
		}
		if p.MaxUses.Valid && p.UsedCount >= p.MaxUses.Int32 {
			return 0, nil
		}
		p.UsedCount++
		return 1, nil
	}
	return 0, nil
}

func (st *fakeState) createOrder(arg repository.CreateOrderParams) (repository.Order, error) {
	o := repository.Order{
		ID:          newID(),
		OrderNumber: arg.OrderNumber,
		UserID:      arg.UserID,
		Status:      arg.Status,

		FirstName: arg.FirstName,
		LastName:  arg.LastName,
		Phone:     arg.Phone,
		Email:     arg.Email,
		City:      arg.City,
		Address:   arg.Address,
		ZipCode:   arg.ZipCode,
		Comment:   arg.Comment,

		SubtotalCents: arg.SubtotalCents,
		DeliveryCents: arg.DeliveryCents,
		DiscountCents: arg.DiscountCents,
		TotalCents:    arg.TotalCents,
		PromoCode:     arg.PromoCode,

		CreatedAt: nowTS(),
		UpdatedAt: nowTS(),
	}
	st.orders = append(st.orders, o)
	return o, nil
}

func (st *fakeState) createOrderItem(arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	i := repository.OrderItem{
		ID:             newID(),
		OrderID:        arg.OrderID,
		ProductID:      arg.ProductID,
		ProductName:    arg.ProductName,
		Quantity:       arg.Quantity,
		UnitPriceCents: arg.UnitPriceCents,
	}
	st.orderItems = append(st.orderItems, i)
	return i, nil
}

func (st *fakeState) getOrderByID(id pgtype.UUID) (repository.Order, error) {
	for _, o := range st.orders {
		if o.ID.Bytes == id.Bytes {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (st *fakeState) getOrderByNumber(orderNumber string) (repository.Order, error) {
	for _, o := range st.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (st *fakeState) listOrdersByUserID(userID pgtype.UUID) ([]repository.Order, error) {
	var orders []repository.Order
	for i := len(st.orders) - 1; i >= 0; i-- {
		o := st.orders[i]
		if o.UserID.Valid && o.UserID.Bytes == userID.Bytes {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (st *fakeState) getOrderItems(orderID pgtype.UUID) ([]repository.OrderItem, error) {
	var items []repository.OrderItem
	for _, i := range st.orderItems {
		if i.OrderID.Bytes == orderID.Bytes {
			items = append(items, i)
		}
	}
	return items, nil
}

func (st *fakeState) updateOrderStatus(arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	for i := range st.orders {
		if st.orders[i].ID.Bytes == arg.ID.Bytes && st.orders[i].Status == arg.FromStatus {
			st.orders[i].Status = arg.Status
			st.orders[i].UpdatedAt = nowTS()
			return st.orders[i], nil
		}
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (st *fakeState) getProductByID(id pgtype.UUID) (repository.Product, error) {
	p, ok := st.products[id.Bytes]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return p, nil
}
