package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm handle for ctx that executes on tx when one is given.
// Services own the transaction through database/sql; repositories call Bind
// so every statement of one operation shares it.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		// WithContext clones the statement, so this does not leak into db.
		conn.Statement.ConnPool = tx
	}
	return conn
}
