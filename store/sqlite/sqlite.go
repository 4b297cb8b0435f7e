/*
Package sqlite provides a SQLite-backed implementation of plan.ProfileStore.

PURPOSE:
  Persists the participant profile record (salary, pay schedule, employer
  match, contribution election, year-to-date figures). In production, the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLE:
  profiles: One row per profile. The server runs with a single profile row;
  the schema does not assume it, but nothing queries across profiles.

MONEY COLUMNS:
  Money and percent values are stored as TEXT in decimal string form, never
  as REAL. Parsing back through decimal.NewFromString keeps values exact.

CONCURRENCY:
  Uses sync.RWMutex to serialize writes, which satisfies the engine's
  at-most-one-writer-per-profile requirement. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/retirement.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - plan/store.go: Interface definition
  - plan/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/retirement-engine/plan"
)

// Store implements plan.ProfileStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ plan.ProfileStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		date_of_birth TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		annual_salary TEXT NOT NULL,
		pay_periods_per_year INTEGER NOT NULL,
		match_percent TEXT NOT NULL,
		max_match_percent TEXT NOT NULL,
		plan_annual_limit TEXT NOT NULL,
		contribution_type TEXT NOT NULL,
		contribution_value TEXT NOT NULL,
		contribution_updated_at TEXT,
		ytd_employee_contributions TEXT NOT NULL,
		ytd_employer_contributions TEXT NOT NULL,
		ytd_total_balance TEXT NOT NULL,
		ytd_paychecks_processed INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE IMPLEMENTATION
// =============================================================================

const profileColumns = `id, name, email, date_of_birth, hire_date,
	annual_salary, pay_periods_per_year, match_percent, max_match_percent,
	plan_annual_limit, contribution_type, contribution_value,
	contribution_updated_at, ytd_employee_contributions,
	ytd_employer_contributions, ytd_total_balance, ytd_paychecks_processed`

// GetProfile returns the profile snapshot, or plan.ErrProfileNotFound.
func (s *Store) GetProfile(ctx context.Context, id string) (*plan.ProfileSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)

	var (
		p                               plan.ProfileSnapshot
		email, contributionUpdatedAt    sql.NullString
		dob, hireDate                   string
		salary, matchPct, maxMatchPct   string
		limit, electionType, electionVal string
		ytdEmployee, ytdEmployer        string
		ytdBalance                      string
	)

	err := row.Scan(&p.ID, &p.Name, &email, &dob, &hireDate,
		&salary, &p.PayPeriodsPerYear, &matchPct, &maxMatchPct,
		&limit, &electionType, &electionVal,
		&contributionUpdatedAt, &ytdEmployee,
		&ytdEmployer, &ytdBalance, &p.YTD.PaychecksProcessed)
	if err == sql.ErrNoRows {
		return nil, plan.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p.Email = email.String
	if p.DateOfBirth, err = time.Parse("2006-01-02", dob); err != nil {
		return nil, fmt.Errorf("invalid date_of_birth for profile %s: %w", id, err)
	}
	if p.HireDate, err = time.Parse("2006-01-02", hireDate); err != nil {
		return nil, fmt.Errorf("invalid hire_date for profile %s: %w", id, err)
	}

	decimals := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&p.AnnualSalary, salary},
		{&p.EmployerMatch.MatchPercent, matchPct},
		{&p.EmployerMatch.MaxMatchPercent, maxMatchPct},
		{&p.PlanAnnualLimit, limit},
		{&p.Contribution.Value, electionVal},
		{&p.YTD.EmployeeContributions, ytdEmployee},
		{&p.YTD.EmployerContributions, ytdEmployer},
		{&p.YTD.TotalBalance, ytdBalance},
	}
	for _, d := range decimals {
		if *d.dst, err = decimal.NewFromString(d.src); err != nil {
			return nil, fmt.Errorf("invalid decimal column for profile %s: %w", id, err)
		}
	}

	p.Contribution.Type = plan.ElectionType(electionType)
	if contributionUpdatedAt.Valid && contributionUpdatedAt.String != "" {
		if p.Contribution.LastUpdated, err = time.Parse(time.RFC3339, contributionUpdatedAt.String); err != nil {
			return nil, fmt.Errorf("invalid contribution_updated_at for profile %s: %w", id, err)
		}
	}

	return &p, nil
}

// SaveProfile creates or replaces the full profile record.
func (s *Store) SaveProfile(ctx context.Context, p plan.ProfileSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	var lastUpdated string
	if !p.Contribution.LastUpdated.IsZero() {
		lastUpdated = p.Contribution.LastUpdated.UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			date_of_birth = excluded.date_of_birth,
			hire_date = excluded.hire_date,
			annual_salary = excluded.annual_salary,
			pay_periods_per_year = excluded.pay_periods_per_year,
			match_percent = excluded.match_percent,
			max_match_percent = excluded.max_match_percent,
			plan_annual_limit = excluded.plan_annual_limit,
			contribution_type = excluded.contribution_type,
			contribution_value = excluded.contribution_value,
			contribution_updated_at = excluded.contribution_updated_at,
			ytd_employee_contributions = excluded.ytd_employee_contributions,
			ytd_employer_contributions = excluded.ytd_employer_contributions,
			ytd_total_balance = excluded.ytd_total_balance,
			ytd_paychecks_processed = excluded.ytd_paychecks_processed,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Email,
		p.DateOfBirth.Format("2006-01-02"), p.HireDate.Format("2006-01-02"),
		p.AnnualSalary.String(), p.PayPeriodsPerYear,
		p.EmployerMatch.MatchPercent.String(), p.EmployerMatch.MaxMatchPercent.String(),
		p.PlanAnnualLimit.String(),
		string(p.Contribution.Type), p.Contribution.Value.String(), lastUpdated,
		p.YTD.EmployeeContributions.String(), p.YTD.EmployerContributions.String(),
		p.YTD.TotalBalance.String(), p.YTD.PaychecksProcessed,
		now, now)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// UpdateContribution replaces the persisted contribution election.
func (s *Store) UpdateContribution(ctx context.Context, id string, e plan.ContributionElection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastUpdated string
	if !e.LastUpdated.IsZero() {
		lastUpdated = e.LastUpdated.UTC().Format(time.RFC3339)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET
			contribution_type = ?,
			contribution_value = ?,
			contribution_updated_at = ?,
			updated_at = ?
		WHERE id = ?`,
		string(e.Type), e.Value.String(), lastUpdated,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to update contribution: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plan.ErrProfileNotFound
	}
	return nil
}
