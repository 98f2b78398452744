package repository

import (
	"context"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Upsert(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)

	// Business queries
	FindByProviderReference(ctx context.Context, provider, externalReference string) (*entity.Payment, error)
	FindLatestPendingSince(ctx context.Context, provider string, since time.Time) (*entity.Payment, error)
	StampExternalReference(ctx context.Context, paymentID uuid.UUID, externalReference string) error
	MarkPaidIfPending(ctx context.Context, paymentID, bookingID uuid.UUID, externalPaymentID string, rawPayload []byte, notifications []*entity.OutboxEntry) (bool, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

// Upsert keeps at most one payment row per booking. Retried session
// creation overwrites the reference and amount of the PENDING row.
func (r *paymentRepository) Upsert(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, workspace_id, provider, external_reference, external_id,
		                      amount_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (booking_id) DO UPDATE
		SET provider = EXCLUDED.provider,
		    external_reference = EXCLUDED.external_reference,
		    external_id = EXCLUDED.external_id,
		    amount_cents = EXCLUDED.amount_cents,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.WorkspaceID,
		payment.Provider,
		payment.ExternalReference,
		payment.ExternalID,
		payment.AmountCents,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("external_reference", payment.ExternalReference),
		)
		return fmt.Errorf("upsert payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, workspace_id, provider, external_reference, external_id,
		       external_payment_id, amount_cents, status, raw_payload, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, workspace_id, provider, external_reference, external_id,
		       external_payment_id, amount_cents, status, raw_payload, created_at, updated_at
		FROM payments
		WHERE booking_id = $1
	`

	return r.scanOne(ctx, query, bookingID)
}

func (r *paymentRepository) FindByProviderReference(ctx context.Context, provider, externalReference string) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, workspace_id, provider, external_reference, external_id,
		       external_payment_id, amount_cents, status, raw_payload, created_at, updated_at
		FROM payments
		WHERE provider = $1 AND external_reference = $2
	`

	return r.scanOne(ctx, query, provider, externalReference)
}

// FindLatestPendingSince returns the most recently created PENDING payment
// created at or after the cutoff, regardless of reference. Used for
// fallback linking when the gateway echoes an unknown order id.
func (r *paymentRepository) FindLatestPendingSince(ctx context.Context, provider string, since time.Time) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, workspace_id, provider, external_reference, external_id,
		       external_payment_id, amount_cents, status, raw_payload, created_at, updated_at
		FROM payments
		WHERE provider = $1 AND status = 'PENDING' AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(ctx, query, provider, since)
}

func (r *paymentRepository) StampExternalReference(ctx context.Context, paymentID uuid.UUID, externalReference string) error {
	query := `UPDATE payments SET external_reference = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, paymentID, externalReference)
	if err != nil {
		r.log.Error("Failed to stamp external reference",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("external_reference", externalReference),
		)
		return fmt.Errorf("stamp external reference on payment %s: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

// MarkPaidIfPending flips the payment to PAID, confirms the booking and
// enqueues the notifications in a single transaction. The payment update is
// conditional on the row not already being PAID, so concurrent or replayed
// deliveries collapse to one winner; false means somebody else already did
// it. Enqueueing inside the transaction means a paid booking always has its
// confirmation row: a retry of a half-applied delivery would otherwise hit
// the already-paid no-op and the message would be lost for good.
func (r *paymentRepository) MarkPaidIfPending(ctx context.Context, paymentID, bookingID uuid.UUID, externalPaymentID string, rawPayload []byte, notifications []*entity.OutboxEntry) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin paid transition for payment %s: %w", paymentID.String(), err)
	}
	defer tx.Rollback(ctx)

	paymentQuery := `
		UPDATE payments
		SET status = 'PAID', external_payment_id = $2, raw_payload = $3, updated_at = NOW()
		WHERE id = $1 AND status <> 'PAID'
	`

	result, err := tx.Exec(ctx, paymentQuery, paymentID, externalPaymentID, rawPayload)
	if err != nil {
		r.log.Error("Failed to mark payment paid",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return false, fmt.Errorf("mark payment %s paid: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		// Already PAID, nothing to do.
		return false, nil
	}

	bookingQuery := `
		UPDATE bookings
		SET status = 'CONFIRMED', payment_status = 'PAID', updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, bookingQuery, bookingID); err != nil {
		r.log.Error("Failed to confirm booking in paid transition",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	outboxQuery := `
		INSERT INTO notification_outbox (id, workspace_id, to_phone, template, body, payload,
		                                 status, attempts, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, entry := range notifications {
		_, err := tx.Exec(ctx, outboxQuery,
			entry.ID,
			entry.WorkspaceID,
			entry.ToPhone,
			entry.Template,
			entry.Body,
			entry.Payload,
			entry.Status,
			entry.Attempts,
			entry.ScheduledAt,
			entry.CreatedAt,
			entry.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to enqueue notification in paid transition",
				zap.Error(err),
				zap.String("payment_id", paymentID.String()),
				zap.String("template", entry.Template),
			)
			return false, fmt.Errorf("enqueue %s for booking %s: %w", entry.Template, bookingID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit paid transition for payment %s: %w", paymentID.String(), err)
	}

	return true, nil
}

func (r *paymentRepository) scanOne(ctx context.Context, query string, args ...any) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.WorkspaceID,
		&payment.Provider,
		&payment.ExternalReference,
		&payment.ExternalID,
		&payment.ExternalPaymentID,
		&payment.AmountCents,
		&payment.Status,
		&payment.RawPayload,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment", zap.Error(err))
		return nil, fmt.Errorf("find payment: %w", err)
	}

	return &payment, nil
}
