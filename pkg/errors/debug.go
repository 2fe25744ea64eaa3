package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Report is a flattened view of an error chain built for log output. The
// Postgres block is filled when a driver error hides anywhere in the chain,
// which is where cart and catalog writes usually fail.
type Report struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Details    any      `json:"details,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	Postgres *PostgresReport `json:"postgres,omitempty"`
}

// PostgresReport carries the driver-level fields of a Postgres failure,
// whichever of the two drivers produced it.
type PostgresReport struct {
	Code       string `json:"code,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Dump walks the chain once and collects everything worth logging about err.
func Dump(err error) Report {
	if err == nil {
		return Report{}
	}

	r := Report{
		TopMessage: err.Error(),
	}

	if typed := As(err); typed != nil {
		r.Code = typed.Code()
		r.Details = typed.Details()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		r.Chain = append(r.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		r.Postgres = &PostgresReport{
			Code:       pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
		return r
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		r.Postgres = &PostgresReport{
			Code:       string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}

	return r
}
