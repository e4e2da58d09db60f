package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"bugtracker-backend/internal/domains/bug/model"
	pkgdb "bugtracker-backend/pkg/database"
)

// Postgres error codes
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

const bugColumns = `
	id, title, description, severity, status,
	assigned_to, priority, reproducible, tags,
	created_at, updated_at
`

// querier là phần chung của *pgxpool.Pool và pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBugRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresBugRepository queryTimeout <= 0 nghĩa là chỉ dùng deadline của caller
func NewPostgresBugRepository(pool *pgxpool.Pool, queryTimeout time.Duration) BugRepository {
	return &postgresBugRepository{
		pool:         pool,
		queryTimeout: queryTimeout,
	}
}

func (r *postgresBugRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBugRepository) Create(ctx context.Context, bug *model.Bug) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO bugs (
			title, description, severity, status,
			assigned_to, priority, reproducible, tags,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		bug.Title,
		bug.Description,
		string(bug.Severity),
		string(bug.Status),
		bug.AssignedTo,
		bug.Priority,
		bug.Reproducible,
		pq.Array(nonNilTags(bug.Tags)),
		bug.CreatedAt,
		bug.UpdatedAt,
	).Scan(&bug.ID)

	if err != nil {
		return fmt.Errorf("failed to create bug: %w", translateError(err))
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBugRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bug, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bugColumns + ` FROM bugs WHERE id = $1`

	bug, err := scanBug(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBugNotFound
		}
		return nil, fmt.Errorf("failed to get bug: %w", err)
	}

	return bug, nil
}

// =====================================================
// UPDATE
// =====================================================

// Update load row với FOR UPDATE, gọi mutate rồi ghi lại trong cùng transaction
// Update song song trên cùng id được serialize, không mất field của nhau
// id và created_at không bao giờ bị ghi đè
func (r *postgresBugRepository) Update(ctx context.Context, id uuid.UUID, mutate BugMutator) (*model.Bug, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return pkgdb.WithTransactionResult(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) (*model.Bug, error) {
		current, err := scanBug(tx.QueryRow(ctx,
			`SELECT `+bugColumns+` FROM bugs WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBugNotFound
			}
			return nil, fmt.Errorf("failed to lock bug: %w", err)
		}

		// lỗi từ mutate trả nguyên vẹn cho caller
		if err := mutate(current); err != nil {
			return nil, err
		}

		return writeBug(ctx, tx, id, current)
	})
}

func writeBug(ctx context.Context, q querier, id uuid.UUID, bug *model.Bug) (*model.Bug, error) {
	query := `
		UPDATE bugs SET
			title = $2,
			description = $3,
			severity = $4,
			status = $5,
			assigned_to = $6,
			priority = $7,
			reproducible = $8,
			tags = $9,
			updated_at = $10
		WHERE id = $1
		RETURNING ` + bugColumns

	updated, err := scanBug(q.QueryRow(ctx, query,
		id,
		bug.Title,
		bug.Description,
		string(bug.Severity),
		string(bug.Status),
		bug.AssignedTo,
		bug.Priority,
		bug.Reproducible,
		pq.Array(nonNilTags(bug.Tags)),
		bug.UpdatedAt,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBugNotFound
		}
		return nil, fmt.Errorf("failed to update bug: %w", translateError(err))
	}

	return updated, nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresBugRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM bugs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bug: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrBugNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresBugRepository) List(ctx context.Context, filter model.ListBugsRequest) ([]*model.Bug, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// Build dynamic WHERE clause
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}

	query := `SELECT ` + bugColumns + ` FROM bugs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + BuildOrderBy(filter.SortBy)

	bugs, err := r.queryBugs(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bugs: %w", err)
	}

	return bugs, nil
}

func (r *postgresBugRepository) ListCritical(ctx context.Context) ([]*model.Bug, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + bugColumns + `
		FROM bugs
		WHERE severity = $1 AND status <> $2
		ORDER BY ` + defaultOrderBy

	bugs, err := r.queryBugs(ctx, query, string(model.SeverityCritical), string(model.StatusClosed))
	if err != nil {
		return nil, fmt.Errorf("failed to list critical bugs: %w", err)
	}

	return bugs, nil
}

func (r *postgresBugRepository) queryBugs(ctx context.Context, query string, args ...interface{}) ([]*model.Bug, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bugs := make([]*model.Bug, 0)
	for rows.Next() {
		bug, err := scanBug(rows)
		if err != nil {
			return nil, err
		}
		bugs = append(bugs, bug)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bugs, nil
}

// =====================================================
// STATISTICS
// =====================================================

func (r *postgresBugRepository) Stats(ctx context.Context) (*model.BugStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	stats, err := pkgdb.WithTransactionResult(ctx, r.pool, pkgdb.ReadOnlySnapshot,
		func(tx pgx.Tx) (*model.BugStats, error) {
			byStatus, err := countByField(ctx, tx, "status")
			if err != nil {
				return nil, err
			}

			bySeverity, err := countByField(ctx, tx, "severity")
			if err != nil {
				return nil, err
			}

			var total int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM bugs`).Scan(&total); err != nil {
				return nil, fmt.Errorf("count total: %w", err)
			}

			return &model.BugStats{
				ByStatus:   byStatus,
				BySeverity: bySeverity,
				Total:      total,
			}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to get bug stats: %w", err)
	}

	return stats, nil
}

// countByField group by một cột cố định (status / severity), nhóm 0 không xuất hiện
func countByField(ctx context.Context, q querier, column string) ([]model.GroupCount, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*)
		FROM bugs
		GROUP BY %[1]s
		ORDER BY COUNT(*) DESC, %[1]s ASC
	`, column)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}
	defer rows.Close()

	groups := make([]model.GroupCount, 0)
	for rows.Next() {
		var g model.GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, fmt.Errorf("scan %s group: %w", column, err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by %s: %w", column, err)
	}

	return groups, nil
}

// =====================================================
// HELPERS
// =====================================================

func scanBug(row pgx.Row) (*model.Bug, error) {
	bug := &model.Bug{}
	var (
		severity string
		status   string
		tags     []string
	)

	err := row.Scan(
		&bug.ID,
		&bug.Title,
		&bug.Description,
		&severity,
		&status,
		&bug.AssignedTo,
		&bug.Priority,
		&bug.Reproducible,
		pq.Array(&tags),
		&bug.CreatedAt,
		&bug.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	bug.Severity = model.Severity(severity)
	bug.Status = model.Status(status)
	bug.Tags = nonNilTags(tags)
	return bug, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// translateError map Postgres constraint errors sang domain errors
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &model.DuplicateFieldError{
			Field: fieldFromConstraint(pgErr.ConstraintName),
			Err:   err,
		}
	case pgCheckViolation:
		return fmt.Errorf("%w: %s", model.ErrConstraintViolation, pgErr.ConstraintName)
	}

	return err
}

// fieldFromConstraint "bugs_assigned_to_key" -> "assignedTo"
func fieldFromConstraint(name string) string {
	name = strings.TrimPrefix(name, "bugs_")
	for _, suffix := range []string{"_key", "_idx", "_pkey", "_check"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if name == "" || name == "pkey" {
		return "id"
	}

	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}
