package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aether-dashboard/aether-api/internal/core/domain"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

const (
	msgGenericConflict = "Resource already exists."
	msgGenericNotFound = "Resource not found"
)

// translate maps driver errors onto domain kinds. Unknown errors pass through
// wrapped so their message still reaches the caller.
func translate(err error, op, conflictMsg, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if conflictMsg == "" {
		conflictMsg = msgGenericConflict
	}
	if notFoundMsg == "" {
		notFoundMsg = msgGenericNotFound
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(notFoundMsg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.Conflict(conflictMsg)
		case codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation:
			return domain.Validation(pgErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike makes user text safe to embed in a LIKE pattern.
func escapeLike(s string) string {
	r := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '\\' || c == '%' || c == '_' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(r)
}

func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}
