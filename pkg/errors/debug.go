package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorDump is the log-friendly view of an error chain.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	Timeout  bool `json:"timeout,omitempty"`
	Canceled bool `json:"canceled,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
}

// Dump flattens err, including errors.Join branches, depth first.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
		Timeout:    errors.Is(err, context.DeadlineExceeded),
		Canceled:   errors.Is(err, context.Canceled),
	}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	d.Chain = walk(err, d.Chain)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		d.PGCode = pgErr.Code
		d.PGConstraint = pgErr.ConstraintName
		d.PGTable = pgErr.TableName
		d.PGDetail = pgErr.Detail
		d.PGMessage = pgErr.Message
	}
	return d
}

func walk(err error, chain []string) []string {
	for err != nil {
		chain = append(chain, fmt.Sprintf("%T: %v", err, err))
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, branch := range joined.Unwrap() {
				chain = walk(branch, chain)
			}
			return chain
		}
		err = errors.Unwrap(err)
	}
	return chain
}
