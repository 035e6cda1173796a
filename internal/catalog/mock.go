package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// MockProvider is an in-memory Provider for tests.
type MockProvider struct {
	Products map[[16]byte]*Product
	Err      error
}

// NewMockProvider creates an empty mock catalog.
func NewMockProvider() *MockProvider {
	return &MockProvider{Products: make(map[[16]byte]*Product)}
}

// Add registers a product in the mock catalog.
func (m *MockProvider) Add(p Product) {
	m.Products[p.ID.Bytes] = &p
}

// GetProduct implements Provider.
func (m *MockProvider) GetProduct(ctx context.Context, id pgtype.UUID) (*Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id.Bytes]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}
