package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

// preparePatch rejects immutable columns and stamps date_modified. Every
// update path goes through it so modification times are never skipped.
func preparePatch(entity string, immutable map[string]struct{}, patch map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(patch)+1)
	for col, v := range patch {
		if _, frozen := immutable[col]; frozen {
			return nil, apperr.InvalidField(entity, col)
		}
		out[col] = v
	}
	out["date_modified"] = time.Now().UTC()
	return out, nil
}

// counterExpr builds an atomic in-place increment clamped at zero. The
// read-modify-write alternative loses updates under concurrent reactions.
func counterExpr(column string, delta int64) interface{} {
	return gorm.Expr(
		fmt.Sprintf("CASE WHEN %s + ? < 0 THEN 0 ELSE %s + ? END", column, column),
		delta, delta,
	)
}
