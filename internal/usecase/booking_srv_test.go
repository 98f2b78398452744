package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingFixture struct {
	repo       *repository.Repository
	fakes      *fakeRepos
	svc        BookingService
	providerID uuid.UUID
	serviceID  uuid.UUID
}

func seedBookingScenario(t *testing.T) *bookingFixture {
	t.Helper()

	repo, fakes := newFakeRepos()

	workspaceID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()

	fakes.workspace.workspaces = append(fakes.workspace.workspaces, &entity.Workspace{
		Base:                 entity.Base{ID: workspaceID},
		Slug:                 "barberia-central",
		Name:                 "Barbería Central",
		PublicBookingEnabled: true,
	})
	fakes.provider.providers = append(fakes.provider.providers, &entity.Provider{
		Base:        entity.Base{ID: providerID},
		WorkspaceID: workspaceID,
		Name:        "Luis",
		IsActive:    true,
	})
	fakes.service.services = append(fakes.service.services, &entity.Service{
		Base:            entity.Base{ID: serviceID},
		WorkspaceID:     workspaceID,
		Name:            "Corte",
		DurationMinutes: 60,
		PriceCents:      1500,
		DepositType:     entity.DepositTypeFixed,
		IsActive:        true,
	})

	// 2026-01-05 is a Monday.
	slot := tpl(1, "09:00", "12:00")
	slot.WorkspaceID = workspaceID
	slot.ProviderID = providerID
	fakes.slot.slots = append(fakes.slot.slots, slot)

	availability := NewAvailabilityService(repo, time.UTC, zap.NewNop())
	svc := NewBookingService(repo, availability, time.UTC, zap.NewNop())

	return &bookingFixture{repo: repo, fakes: fakes, svc: svc, providerID: providerID, serviceID: serviceID}
}

func (fx *bookingFixture) request(startAt string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Workspace:     "barberia-central",
		ServiceID:     fx.serviceID.String(),
		ProviderID:    fx.providerID.String(),
		CustomerName:  "Ana",
		CustomerPhone: "6123-4567",
		StartAt:       startAt,
	}
}

func TestCreateBookingOfferedSlot(t *testing.T) {
	fx := seedBookingScenario(t)

	resp, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if resp.Status != entity.BookingStatusPending {
		t.Errorf("status = %s, want PENDING", resp.Status)
	}
	if resp.PaymentStatus != entity.BookingPaymentStatusUnpaid {
		t.Errorf("payment status = %s, want UNPAID", resp.PaymentStatus)
	}
	if resp.CustomerPhone != "+50761234567" {
		t.Errorf("phone = %s, want normalized E.164", resp.CustomerPhone)
	}
	if !resp.EndAt.Equal(resp.StartAt.Add(time.Hour)) {
		t.Errorf("end = %v for start %v", resp.EndAt, resp.StartAt)
	}

	if len(fx.fakes.booking.bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(fx.fakes.booking.bookings))
	}

	types := strings.Join(fx.fakes.event.types(), ",")
	if !strings.Contains(types, "booking.created") {
		t.Errorf("missing booking.created event, got %s", types)
	}
}

func TestCreateBookingMixedCaseSlug(t *testing.T) {
	fx := seedBookingScenario(t)

	req := fx.request("2026-01-05T09:00:00Z")
	req.Workspace = "Barberia-Central"

	if _, err := fx.svc.CreateBooking(context.Background(), req); err != nil {
		t.Fatalf("CreateBooking with mixed-case slug: %v", err)
	}
}

func TestCreateBookingTakenSlot(t *testing.T) {
	fx := seedBookingScenario(t)

	if _, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z")); err != nil {
		t.Fatalf("first CreateBooking: %v", err)
	}

	_, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z"))
	if err == nil || !strings.Contains(err.Error(), "already booked") {
		t.Fatalf("expected already booked error, got %v", err)
	}
}

func TestCreateBookingOffGridStart(t *testing.T) {
	fx := seedBookingScenario(t)

	// 09:30 is not a candidate on a 60-minute grid starting at 09:00.
	_, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:30:00Z"))
	if err == nil || !strings.Contains(err.Error(), "already booked") {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestCreateBookingDisabledWorkspace(t *testing.T) {
	fx := seedBookingScenario(t)
	fx.fakes.workspace.workspaces[0].PublicBookingEnabled = false

	_, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConfirmAndCancelBooking(t *testing.T) {
	fx := seedBookingScenario(t)

	resp, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := fx.svc.ConfirmBooking(context.Background(), resp.ID); err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if fx.fakes.booking.bookings[0].Status != entity.BookingStatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", fx.fakes.booking.bookings[0].Status)
	}

	// Confirming twice is rejected.
	if err := fx.svc.ConfirmBooking(context.Background(), resp.ID); err == nil {
		t.Error("expected error confirming a confirmed booking")
	}

	if err := fx.svc.CancelBooking(context.Background(), resp.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if fx.fakes.booking.bookings[0].Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", fx.fakes.booking.bookings[0].Status)
	}

	if err := fx.svc.CancelBooking(context.Background(), resp.ID); err == nil {
		t.Error("expected error cancelling a cancelled booking")
	}
}

func TestCancelledSlotIsOfferedAgain(t *testing.T) {
	fx := seedBookingScenario(t)

	resp, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := fx.svc.CancelBooking(context.Background(), resp.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	if _, err := fx.svc.CreateBooking(context.Background(), fx.request("2026-01-05T09:00:00Z")); err != nil {
		t.Fatalf("rebooking a cancelled slot: %v", err)
	}
}
