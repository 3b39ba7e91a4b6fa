package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/GymClassService/internal/domain"
	"github.com/m04kA/GymClassService/pkg/dbmetrics"
	"github.com/m04kA/GymClassService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

var sessionColumns = []string{
	"id",
	"gym_class_id",
	"location_id",
	"trainer_id",
	"session_date",
	"start_time",
	"end_time",
	"max_capacity",
	"current_bookings",
	"waitlist_count",
	"checked_in_count",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое занятие
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_sessions").
		Columns(
			"id",
			"gym_class_id",
			"location_id",
			"trainer_id",
			"session_date",
			"start_time",
			"end_time",
			"max_capacity",
			"current_bookings",
			"waitlist_count",
			"checked_in_count",
			"status",
		).
		Values(
			session.ID,
			session.GymClassID,
			session.LocationID,
			session.TrainerID,
			session.SessionDate,
			session.StartTime,
			session.EndTime,
			session.MaxCapacity,
			session.CurrentBookings,
			session.WaitlistCount,
			session.CheckedInCount,
			session.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает занятие по ID
// Внутри транзакции блокирует строку (FOR UPDATE) - счетчики занятия являются
// критическим разделяемым ресурсом при конкурентных бронированиях
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("class_sessions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var session domain.Session
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&session.GymClassID,
		&session.LocationID,
		&session.TrainerID,
		&session.SessionDate,
		&session.StartTime,
		&session.EndTime,
		&session.MaxCapacity,
		&session.CurrentBookings,
		&session.WaitlistCount,
		&session.CheckedInCount,
		&session.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

// UpdateCounters сохраняет счетчики и статус занятия после перехода состояния
func (r *Repository) UpdateCounters(ctx context.Context, session *domain.Session) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_sessions").
		Set("current_bookings", session.CurrentBookings).
		Set("waitlist_count", session.WaitlistCount).
		Set("checked_in_count", session.CheckedInCount).
		Set("status", session.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": session.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCounters - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
