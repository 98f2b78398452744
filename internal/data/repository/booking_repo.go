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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// Business queries
	FindActiveByProviderOnDay(ctx context.Context, workspaceID, providerID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, workspace_id, service_id, provider_id, customer_name, customer_phone,
		                      start_at, end_at, status, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.WorkspaceID,
		booking.ServiceID,
		booking.ProviderID,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
		booking.PaymentStatus,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("workspace_id", booking.WorkspaceID.String()),
			zap.String("provider_id", booking.ProviderID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, workspace_id, service_id, provider_id, customer_name, customer_phone,
		       start_at, end_at, status, payment_status, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.WorkspaceID,
		&booking.ServiceID,
		&booking.ProviderID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// FindActiveByProviderOnDay returns the provider's non-cancelled bookings
// whose start falls inside [dayStart, dayEnd).
func (r *bookingRepository) FindActiveByProviderOnDay(ctx context.Context, workspaceID, providerID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT id, workspace_id, service_id, provider_id, customer_name, customer_phone,
		       start_at, end_at, status, payment_status, notes, created_at, updated_at
		FROM bookings
		WHERE workspace_id = $1 AND provider_id = $2
		  AND start_at >= $3 AND start_at < $4
		  AND status <> 'CANCELLED'
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, workspaceID, providerID, dayStart, dayEnd)
	if err != nil {
		r.log.Error("Failed to find bookings for provider day",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
			zap.Time("day_start", dayStart),
		)
		return nil, fmt.Errorf("find bookings for provider %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.WorkspaceID,
			&booking.ServiceID,
			&booking.ProviderID,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.StartAt,
			&booking.EndAt,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.Notes,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
