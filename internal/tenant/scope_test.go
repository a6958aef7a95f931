package tenant_test

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"lucia-hrms/internal/authz"
	"lucia-hrms/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID string
}

func (row) TableName() string { return "leave_requests" }

func setupDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name  string
		auth  authz.Context
		query string
		args  []driver.Value
	}{
		{
			name:  "organization role sees all",
			auth:  authz.Context{CallerID: "a", Role: authz.RoleAdmin},
			query: `SELECT * FROM "leave_requests"`,
		},
		{
			name:  "branch role sees its branch",
			auth:  authz.Context{CallerID: "m", Role: authz.RoleBranchManager, ScopedBranchID: "b-1"},
			query: `SELECT * FROM "leave_requests" WHERE branch_id = $1`,
			args:  []driver.Value{"b-1"},
		},
		{
			name:  "branch role without a branch falls back to own rows",
			auth:  authz.Context{CallerID: "m", Role: authz.RoleBranchAdmin},
			query: `SELECT * FROM "leave_requests" WHERE employee_id = $1`,
			args:  []driver.Value{"m"},
		},
		{
			name:  "employee sees own rows",
			auth:  authz.Context{CallerID: "e", Role: authz.RoleEmployee},
			query: `SELECT * FROM "leave_requests" WHERE employee_id = $1`,
			args:  []driver.Value{"e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupDB(t)

			expect := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if len(tt.args) > 0 {
				expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(sqlmock.NewRows([]string{"id"}))

			var rows []row
			err := db.Scopes(tenant.Visible(tt.auth)).Find(&rows).Error

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
