package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWriteErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "connection exception",
			err:  &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			want: ErrStoreUnavailable,
		},
		{
			name: "too many connections",
			err:  &pgconn.PgError{Code: pgerrcode.TooManyConnections},
			want: ErrStoreUnavailable,
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			want: ErrStoreUnavailable,
		},
		{
			name: "stock check",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_stocks_quantity_non_negative"},
			want: ErrInsufficientStock,
		},
		{
			name: "other check",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "chk_sales_quantity_positive"},
			want: ErrWriteFailed,
		},
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: pgerrcode.SerializationFailure},
			want: ErrWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := writeErr(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestStoreErr(t *testing.T) {
	assert.Nil(t, storeErr(nil))

	plain := errors.New("syntax error")
	assert.Same(t, plain, storeErr(plain))

	assert.ErrorIs(t, storeErr(&pgconn.PgError{Code: pgerrcode.AdminShutdown}), ErrStoreUnavailable)
}
