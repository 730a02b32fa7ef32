package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		prepare func(m pgxmock.PgxPoolIface)
		fn      func(tx pgx.Tx) error
		wantErr error
	}{
		{
			name: "commit on success",
			prepare: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectExec("UPDATE users").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				m.ExpectCommit()
			},
			fn: func(tx pgx.Tx) error {
				_, err := tx.Exec(context.Background(), "UPDATE users SET disabled = TRUE")
				return err
			},
		},
		{
			name: "rollback on error",
			prepare: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn:      func(pgx.Tx) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name: "begin failure",
			prepare: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin().WillReturnError(errBoom)
			},
			fn: func(pgx.Tx) error {
				t.Fatal("fn must not run without a transaction")
				return nil
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.prepare(mock)

			err = WithTx(context.Background(), mock, tt.fn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), mock, func(pgx.Tx) error { panic("kaboom") })
	})
	require.NoError(t, mock.ExpectationsWereMet())
}
