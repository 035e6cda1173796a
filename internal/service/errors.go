package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mpetrenko/voltride/internal/domain"
)

// storageErr classifies a repository failure. Row-absence is handled by
// callers before reaching here; anything else is a storage fault the
// caller may retry, since no operation in this package partially commits.
func storageErr(err error, op string) error {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Internal(err, op, "unexpected missing row")
	}
	return domain.Unavailable(err, op, "storage unavailable")
}
