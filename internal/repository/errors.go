// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios, for
// example a lookup of an id that does not exist versus a write that
// collided with the unique name constraint.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrVenueNotFound is returned when a venue id does not exist.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when an artist id does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// ErrDuplicateName is returned when an insert or update would give two
// venues (or two artists) the same name. Handlers should report it as
// a failed write; existing rows are left untouched.
var ErrDuplicateName = errors.New("name already exists")

// ErrReferenceMissing is returned when a show references an artist or
// venue row that no longer exists at commit time.
var ErrReferenceMissing = errors.New("referenced record missing")

// MySQL server error numbers mapped to sentinels.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1452
	mysqlNoReferencedRow1 = 1216
)

// mapWriteErr translates driver errors raised by INSERT/UPDATE into the
// sentinels above.  Unknown errors pass through unchanged.
func mapWriteErr(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return err
	}
	switch me.Number {
	case mysqlDuplicateEntry:
		return fmt.Errorf("%w: %s", ErrDuplicateName, me.Message)
	case mysqlNoReferencedRow, mysqlNoReferencedRow1:
		return fmt.Errorf("%w: %s", ErrReferenceMissing, me.Message)
	}
	return err
}
