package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/fpl-squad-optimizer/internal/usecase"
)

const (
	pqClassConnectionException pq.ErrorClass = "08"
	pqCodeUndefinedTable       pq.ErrorCode  = "42P01"
	pqCodeAdminShutdown        pq.ErrorCode  = "57P01"
	pqCodeCannotConnectNow     pq.ErrorCode  = "57P03"
)

// wrapQueryError tags failures the caller cannot fix by changing input
// (lost connection, server restart, schema not migrated) as an unavailable dependency.
func wrapQueryError(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", usecase.ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code.Class() == pqClassConnectionException {
		return true
	}
	switch pqErr.Code {
	case pqCodeUndefinedTable, pqCodeAdminShutdown, pqCodeCannotConnectNow:
		return true
	default:
		return false
	}
}

func nullInt64ToInt(v sql.NullInt64) int {
	if !v.Valid {
		return 0
	}
	return int(v.Int64)
}

func nullTimeToPtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// gameweekToNull stores unscheduled fixtures (gameweek 0) as NULL.
func gameweekToNull(gameweek int) sql.NullInt64 {
	if gameweek <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(gameweek), Valid: true}
}

func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func sortedKeys(items map[string]string) []string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
