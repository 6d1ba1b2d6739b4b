package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	defaultHistoryLimit = 20
)

const baseProfilesSelect = `SELECT id, name, farm, created_at, updated_at
FROM farm_profiles`

const countProfilesSelect = "SELECT COUNT(*) FROM farm_profiles"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a profile
// query. It returns the data query, the count query, and the positional
// parameters shared by both.
func (q *ProfileQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.SoilType != nil {
		conditions = append(conditions, fmt.Sprintf("farm->>'soilType' = $%d", paramIdx))
		args = append(args, *q.SoilType)
		paramIdx++
	}

	if q.FarmingPriority != nil {
		conditions = append(conditions, fmt.Sprintf("farm->>'farmingPriority' = $%d", paramIdx))
		args = append(args, *q.FarmingPriority)
		paramIdx++
	}

	if q.Name != nil {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", paramIdx))
		args = append(args, "%"+*q.Name+"%")
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := clampLimit(q.Limit, defaultLimit)
	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		baseProfilesSelect, whereClause, limit, offset,
	)
	countSQL = countProfilesSelect + whereClause

	return dataSQL, countSQL, args
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return min(limit, maxLimit)
}
