package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/request"
	"booking-platform/internal/dto/response"
	"booking-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoint
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ConfirmBooking(ctx context.Context, bookingID string) error
	CancelBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo         *repository.Repository
	availability AvailabilityService
	defaultLoc   *time.Location
	log          *zap.Logger
}

func NewBookingService(repo *repository.Repository, availability AvailabilityService, defaultLoc *time.Location, log *zap.Logger) BookingService {
	return &bookingService{
		repo:         repo,
		availability: availability,
		defaultLoc:   defaultLoc,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	phone := utils.NormalizePA(req.CustomerPhone)
	if phone == "" {
		return nil, fmt.Errorf("invalid customer phone")
	}

	// Slugs are stored lowercase; normalize before the lookup.
	slug := strings.ToLower(req.Workspace)
	workspace, err := s.repo.Workspace.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", slug, err)
	}
	if workspace == nil || !workspace.PublicBookingEnabled {
		return nil, fmt.Errorf("workspace %s not found", slug)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", req.ProviderID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", req.ServiceID, err)
	}
	if service == nil || service.WorkspaceID != workspace.ID || !service.IsActive {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	provider, err := s.repo.Provider.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("get provider %s: %w", req.ProviderID, err)
	}
	if provider == nil || provider.WorkspaceID != workspace.ID || !provider.IsActive {
		return nil, fmt.Errorf("provider %s not found", req.ProviderID)
	}

	loc := s.defaultLoc
	if parsed, err := time.LoadLocation(workspace.Timezone); err == nil {
		loc = parsed
	}

	startAt, err := parseStartAt(req.StartAt, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start_at %s: %w", req.StartAt, err)
	}

	// The requested instant must still be on offer: this re-runs the slot
	// computation, so template fit and overlap exclusion both apply. The
	// final guarantee lives in the store's exclusion constraint.
	date := startAt.In(loc).Format("2006-01-02")
	offered, err := s.availability.StartTimes(ctx, workspace, providerID, service, date)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}

	available := false
	for _, candidate := range offered {
		if candidate.Equal(startAt) {
			available = true
			break
		}
	}
	if !available {
		return nil, fmt.Errorf("slot %s is already booked", req.StartAt)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WorkspaceID:   workspace.ID,
		ServiceID:     serviceID,
		ProviderID:    providerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		StartAt:       startAt,
		EndAt:         startAt.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingPaymentStatusUnpaid,
		Notes:         req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("workspace", req.Workspace),
			zap.String("provider_id", req.ProviderID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.auditBookingCreated(ctx, booking)

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("workspace", req.Workspace),
		zap.Time("start_at", startAt),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	resp := response.BookingToResponse(booking)

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err == nil && payment != nil {
		paymentResp := response.PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return &resp, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.Status != entity.BookingStatusPending {
		return fmt.Errorf("booking status is %s, cannot confirm", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusConfirmed); err != nil {
		s.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("confirm booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking confirmed manually", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", bookingID)
	}

	if booking.Status == entity.BookingStatusCancelled {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) auditBookingCreated(ctx context.Context, booking *entity.Booking) {
	event := &entity.Event{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		WorkspaceID: &booking.WorkspaceID,
		Source:      "api",
		Type:        "booking.created",
		Payload:     []byte(fmt.Sprintf(`{"booking_id":%q}`, booking.ID.String())),
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to write booking.created event",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}

// parseStartAt accepts a full RFC 3339 timestamp or a local
// "YYYY-MM-DDTHH:MM" value interpreted in the workspace zone.
func parseStartAt(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
