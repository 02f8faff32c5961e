package payment

import (
	"context"
	"errors"
	"log"

	"storefront-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const paymentColumns = `
id::text, order_id::text, COALESCE(buyer_id, ''), amount_cents, currency,
payment_method, status, transaction_reference, provider_response, paid_at, created_at
`

func (r *postgresRepo) Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	const q = `
INSERT INTO payments (id, order_id, buyer_id, amount_cents, currency, payment_method, transaction_reference)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
RETURNING ` + paymentColumns
	var out domain.Payment
	if err := r.pool.QueryRow(ctx, q,
		in.PaymentID, in.OrderID, in.BuyerID, in.AmountCents, in.Currency, in.PaymentMethod, in.TransactionReference,
	).Scan(paymentFields(&out)...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_reference = $1`
	var out domain.Payment
	if err := r.pool.QueryRow(ctx, q, reference).Scan(paymentFields(&out)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetPaidByOrder(ctx context.Context, orderID string) (*domain.Payment, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments
WHERE order_id = $1 AND status = 'paid'
ORDER BY created_at DESC
LIMIT 1
`
	var out domain.Payment
	if err := r.pool.QueryRow(ctx, q, orderID).Scan(paymentFields(&out)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Transitions applied by ApplyOutcome. A success outcome may override an
// earlier failure (the buyer retried and the gateway eventually collected),
// but a paid payment never regresses to failed and terminal states stay put.
const (
	applyPaid = `
UPDATE payments
SET status = 'paid', paid_at = COALESCE($2, now()), provider_response = $3
WHERE transaction_reference = $1 AND status IN ('pending', 'failed')
RETURNING ` + paymentColumns

	applyFailed = `
UPDATE payments
SET status = 'failed', paid_at = NULL, provider_response = $2
WHERE transaction_reference = $1 AND status = 'pending'
RETURNING ` + paymentColumns
)

func (r *postgresRepo) ApplyOutcome(ctx context.Context, in ApplyOutcomeInput) (*domain.Payment, bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	var out domain.Payment
	if in.Paid {
		err = tx.QueryRow(ctx, applyPaid, in.Reference, in.PaidAt, in.ProviderResponse).Scan(paymentFields(&out)...)
	} else {
		err = tx.QueryRow(ctx, applyFailed, in.Reference, in.ProviderResponse).Scan(paymentFields(&out)...)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// No transition: duplicate delivery, a stale failure arriving after a
		// success, or a terminal payment. Report the current row untouched.
		const q = `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_reference = $1`
		if err := tx.QueryRow(ctx, q, in.Reference).Scan(paymentFields(&out)...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, false, domain.ErrPaymentNotFound
			}
			return nil, false, err
		}
		return &out, false, tx.Commit(ctx)
	}
	if err != nil {
		return nil, false, err
	}

	if in.Paid {
		const q = `UPDATE orders SET payment_status = 'paid', status = 'processing' WHERE id = $1`
		if _, err := tx.Exec(ctx, q, out.OrderID); err != nil {
			return nil, false, err
		}
	} else {
		// Back to pending so the buyer can retry payment without re-placing
		// the order.
		const q = `UPDATE orders SET payment_status = 'failed', status = 'pending' WHERE id = $1`
		if _, err := tx.Exec(ctx, q, out.OrderID); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

func (r *postgresRepo) MarkRefunded(ctx context.Context, paymentID string, providerResponse []byte) (*domain.Payment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE payments
SET status = 'refunded', provider_response = COALESCE($2, provider_response)
WHERE id = $1 AND status = 'paid'
RETURNING ` + paymentColumns
	var out domain.Payment
	err = tx.QueryRow(ctx, q, paymentID, providerResponse).Scan(paymentFields(&out)...)
	if errors.Is(err, pgx.ErrNoRows) {
		const read = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
		if err := tx.QueryRow(ctx, read, paymentID).Scan(paymentFields(&out)...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrPaymentNotFound
			}
			return nil, err
		}
		return &out, tx.Commit(ctx)
	}
	if err != nil {
		return nil, err
	}

	const orderQ = `UPDATE orders SET payment_status = 'refunded' WHERE id = $1`
	if _, err := tx.Exec(ctx, orderQ, out.OrderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func paymentFields(p *domain.Payment) []interface{} {
	return []interface{}{
		&p.ID, &p.OrderID, &p.BuyerID, &p.AmountCents, &p.Currency,
		&p.PaymentMethod, &p.Status, &p.TransactionReference, &p.ProviderResponse,
		&p.PaidAt, &p.CreatedAt,
	}
}
