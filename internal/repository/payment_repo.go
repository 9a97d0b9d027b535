package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// PaymentRepository define el contrato de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
}

// PgPaymentRepository implementa PaymentRepository usando pgxpool.
type PgPaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPgPaymentRepository(pool *pgxpool.Pool) *PgPaymentRepository {
	return &PgPaymentRepository{pool: pool}
}

func (r *PgPaymentRepository) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	const query = `
		INSERT INTO payments (user_id, razorpay_payment_id, razorpay_order_id, amount, currency, status, payment_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.GatewayID,
		p.OrderID,
		p.Amount,
		p.Currency,
		p.Status,
		p.PaymentType,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return domain.Payment{}, err
	}
	return p, nil
}

func (r *PgPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	const query = `
		SELECT id, user_id, COALESCE(razorpay_payment_id, ''), COALESCE(razorpay_order_id, ''),
		       amount, currency, status, payment_type, created_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.GatewayID, &p.OrderID, &p.Amount, &p.Currency, &p.Status, &p.PaymentType, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
