package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ems-dash/apiserver/types"
)

// Order fixes the reading_date sort direction for report listings.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// ReportRepository handles read-only access to energy_reports.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ListByReadingDate returns every energy_reports row ordered by reading_date.
// The measurement column set varies between deployments, so rows are scanned
// dynamically and passed through untouched.
func (r *ReportRepository) ListByReadingDate(ctx context.Context, order Order) ([]types.Report, error) {
	query := fmt.Sprintf(`SELECT * FROM energy_reports ORDER BY reading_date %s`, order)
	return r.queryReports(ctx, query)
}

// Ping runs a trivial liveness query and returns its rows verbatim.
func (r *ReportRepository) Ping(ctx context.Context) ([]types.Report, error) {
	return r.queryReports(ctx, `SELECT 1 AS ok`)
}

func (r *ReportRepository) queryReports(ctx context.Context, query string) ([]types.Report, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	reports := make([]types.Report, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		report := make(types.Report, len(cols))
		for i, col := range cols {
			// lib/pq hands back []byte for text and numeric columns.
			if b, ok := values[i].([]byte); ok {
				report[col] = string(b)
			} else {
				report[col] = values[i]
			}
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
