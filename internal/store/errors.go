package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrConflict marks a duplicate-key violation. The resolver treats
	// it as a benign concurrent-creation race and retries the lookup;
	// any other store failure is fatal to the request.
	ErrConflict = errors.New("duplicate key")
)

const mysqlDupEntry = 1062

const (
	sqliteConstraint           = 19
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

// isConflict classifies a driver error as a unique/primary-key
// violation for both supported dialects.
func isConflict(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDupEntry
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqliteConstraintUnique ||
			code == sqliteConstraintPrimaryKey ||
			code&0xff == sqliteConstraint
	}
	return strings.Contains(strings.ToLower(err.Error()), "constraint")
}
