package catalog

import "errors"

// ErrProductNotFound is returned when no product matches the identifier.
var ErrProductNotFound = errors.New("catalog: product not found")
