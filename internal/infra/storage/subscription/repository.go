package subscription

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

var subscriptionColumns = []string{
	"id",
	"member_id",
	"plan_id",
	"start_date",
	"end_date",
	"status",
	"classes_remaining",
	"created_at",
	"updated_at",
}

// Repository репозиторий подписок
// Счетчик classes_remaining - критический разделяемый ресурс, поэтому чтения
// внутри транзакции блокируют строку (FOR UPDATE)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает подписку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	selectBuilder := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, selectBuilder, ErrSubscriptionNotFound, "GetByID")
}

// GetActiveByMemberID получает активную подписку участника
func (r *Repository) GetActiveByMemberID(ctx context.Context, memberID uuid.UUID) (*domain.Subscription, error) {
	selectBuilder := psqlbuilder.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{
			"member_id": memberID,
			"status":    domain.SubscriptionActive,
		}).
		OrderBy("end_date DESC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, selectBuilder, ErrNoActiveSubscription, "GetActiveByMemberID")
}

// UpdateClassesRemaining сохраняет баланс занятий и статус подписки
func (r *Repository) UpdateClassesRemaining(ctx context.Context, sub *domain.Subscription) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("subscriptions").
		Set("classes_remaining", sub.ClassesRemaining).
		Set("status", sub.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sub.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateClassesRemaining - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateClassesRemaining - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateClassesRemaining - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

func (r *Repository) getOne(
	ctx context.Context,
	selectBuilder squirrel.SelectBuilder,
	notFound error,
	method string,
) (*domain.Subscription, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var sub domain.Subscription
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sub.ID,
		&sub.MemberID,
		&sub.PlanID,
		&sub.StartDate,
		&sub.EndDate,
		&sub.Status,
		&sub.ClassesRemaining,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan subscription: %v", ErrScanRow, method, err)
	}

	sub.CreatedAt = createdAt.Time
	sub.UpdatedAt = updatedAt.Time

	return &sub, nil
}
