package database

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// PaymentSummaryRow aggregates persisted payments by status.
type PaymentSummaryRow struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// PaymentSummary returns per-status payment counts and totals. Built as a raw
// query over the pooled connection so the aggregation runs in the store.
func PaymentSummary(db *gorm.DB) ([]PaymentSummaryRow, error) {
	queryBuilder := psql.Select(
		"status",
		"COUNT(*) AS count",
		"COALESCE(SUM(amount), 0) AS total_amount",
	).From("payments").
		GroupBy("status").
		OrderBy("status")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for PaymentSummary: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	rows, err := sqlDB.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment summary: %w", err)
	}
	defer rows.Close()

	var summary []PaymentSummaryRow
	for rows.Next() {
		var row PaymentSummaryRow
		if err := rows.Scan(&row.Status, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan payment summary row: %w", err)
		}
		summary = append(summary, row)
	}
	return summary, rows.Err()
}
