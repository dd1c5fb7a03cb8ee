package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

// PostgresStore keeps the same snapshot contract as FileStore: every save
// replaces the whole collection inside one transaction.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sales_reports (
			position INTEGER PRIMARY KEY,
			company_name TEXT NOT NULL,
			report_content TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alert_keywords (
			position INTEGER PRIMARY KEY,
			keyword TEXT NOT NULL
		)`,
	}
	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

func (s *PostgresStore) LoadReports(ctx context.Context) ([]model.Report, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT company_name, report_content FROM sales_reports ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []model.Report{}
	for rows.Next() {
		var r model.Report
		if err := rows.Scan(&r.CompanyName, &r.ReportContent); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *PostgresStore) SaveReports(ctx context.Context, reports []model.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales_reports`); err != nil {
		return fmt.Errorf("failed to clear reports: %w", err)
	}
	for i, r := range reports {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_reports (position, company_name, report_content)
			VALUES ($1, $2, $3)`,
			i, r.CompanyName, r.ReportContent)
		if err != nil {
			return fmt.Errorf("failed to insert report: %w", err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) LoadKeywords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT keyword FROM alert_keywords ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	keywords := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

func (s *PostgresStore) SaveKeywords(ctx context.Context, keywords []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM alert_keywords`); err != nil {
		return fmt.Errorf("failed to clear keywords: %w", err)
	}
	for i, k := range model.NormalizeKeywords(keywords) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO alert_keywords (position, keyword) VALUES ($1, $2)`, i, k); err != nil {
			return fmt.Errorf("failed to insert keyword: %w", err)
		}
	}
	return tx.Commit()
}
