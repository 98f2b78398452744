package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ipnFixture struct {
	repo    *fakeRepos
	svc     PaymentService
	gateway *fakeGateway
	payment *entity.Payment
	booking *entity.Booking
}

// seedPaidScenario sets up one PENDING payment over a PENDING booking that
// starts at the given instant.
func seedPaidScenario(t *testing.T, startAt time.Time) *ipnFixture {
	t.Helper()

	repo, fakes := newFakeRepos()

	workspaceID := uuid.New()
	fakes.workspace.workspaces = append(fakes.workspace.workspaces, &entity.Workspace{
		Base:                 entity.Base{ID: workspaceID},
		Slug:                 "barberia-central",
		Name:                 "Barbería Central",
		PublicBookingEnabled: true,
	})

	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		WorkspaceID:   workspaceID,
		ServiceID:     uuid.New(),
		ProviderID:    uuid.New(),
		CustomerName:  "Ana",
		CustomerPhone: "+50761234567",
		StartAt:       startAt,
		EndAt:         startAt.Add(time.Hour),
		Status:        entity.BookingStatusPending,
		PaymentStatus: entity.BookingPaymentStatusUnpaid,
	}
	fakes.booking.bookings = append(fakes.booking.bookings, booking)

	payment := &entity.Payment{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:         booking.ID,
		WorkspaceID:       workspaceID,
		Provider:          "YAPPY",
		ExternalReference: "BK1234567890abc",
		AmountCents:       500,
		Status:            entity.PaymentStatusPending,
	}
	fakes.payment.payments = append(fakes.payment.payments, payment)

	gw := &fakeGateway{verifyOK: true}
	svc := NewPaymentService(repo, gw, zap.NewNop())

	return &ipnFixture{repo: fakes, svc: svc, gateway: gw, payment: payment, booking: booking}
}

func executedIPN(reference string) *request.IPNNotification {
	return &request.IPNNotification{
		OrderID:            reference,
		Status:             "E",
		Domain:             "https://booking.example",
		Hash:               "deadbeef",
		ConfirmationNumber: "CONF-9",
	}
}

func TestProcessIPNExecutedConfirmsBooking(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	ack, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc"))
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK {
		t.Error("expected OK ack")
	}

	if fx.payment.Status != entity.PaymentStatusPaid {
		t.Errorf("payment status = %s, want PAID", fx.payment.Status)
	}
	if fx.payment.ExternalPaymentID == nil || *fx.payment.ExternalPaymentID != "CONF-9" {
		t.Errorf("external payment id not stamped: %v", fx.payment.ExternalPaymentID)
	}
	if fx.booking.Status != entity.BookingStatusConfirmed {
		t.Errorf("booking status = %s, want CONFIRMED", fx.booking.Status)
	}
	if fx.booking.PaymentStatus != entity.BookingPaymentStatusPaid {
		t.Errorf("booking payment status = %s, want PAID", fx.booking.PaymentStatus)
	}

	// 48h out: confirmation plus both reminders.
	if len(fx.repo.outbox.entries) != 3 {
		t.Fatalf("got %d outbox entries, want 3", len(fx.repo.outbox.entries))
	}
	templates := map[string]bool{}
	for _, e := range fx.repo.outbox.entries {
		templates[e.Template] = true
		if e.ToPhone != "+50761234567" {
			t.Errorf("outbox to = %s", e.ToPhone)
		}
	}
	for _, want := range []string{"booking_confirmed", "reminder_24h", "reminder_3h"} {
		if !templates[want] {
			t.Errorf("missing outbox template %s", want)
		}
	}

	types := strings.Join(fx.repo.event.types(), ",")
	if !strings.Contains(types, "payment.confirmed") || !strings.Contains(types, "booking.confirmed") {
		t.Errorf("missing confirmation events, got %s", types)
	}
}

func TestProcessIPNSkipsPastReminders(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(2*time.Hour))

	if _, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc")); err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}

	// Both reminder fire times are already in the past.
	if len(fx.repo.outbox.entries) != 1 {
		t.Fatalf("got %d outbox entries, want 1", len(fx.repo.outbox.entries))
	}
	if fx.repo.outbox.entries[0].Template != "booking_confirmed" {
		t.Errorf("template = %s", fx.repo.outbox.entries[0].Template)
	}
}

func TestProcessIPNReplayIsIdempotent(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	if _, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc")); err != nil {
		t.Fatalf("first ProcessIPN: %v", err)
	}
	outboxBefore := len(fx.repo.outbox.entries)

	ack, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc"))
	if err != nil {
		t.Fatalf("replay ProcessIPN: %v", err)
	}
	if !ack.OK || ack.Note != "already paid" {
		t.Errorf("replay ack = %+v", ack)
	}
	if len(fx.repo.outbox.entries) != outboxBefore {
		t.Errorf("replay enqueued notifications: %d -> %d", outboxBefore, len(fx.repo.outbox.entries))
	}
}

func TestProcessIPNNotificationFailureKeepsPending(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	// Notifications are assembled before the paid transition and committed
	// with it. If assembly fails the payment must stay PENDING so the
	// gateway retry can complete the whole transition.
	fx.repo.booking.bookings = nil

	_, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc"))
	if err == nil {
		t.Fatal("expected error when the booking cannot be loaded")
	}

	if fx.payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", fx.payment.Status)
	}
	if len(fx.repo.outbox.entries) != 0 {
		t.Errorf("outbox written despite failed transition")
	}
}

func TestProcessIPNRejectsBadSignature(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))
	fx.gateway.verifyOK = false

	_, err := fx.svc.ProcessIPN(context.Background(), executedIPN("BK1234567890abc"))
	if err == nil || !strings.Contains(err.Error(), "invalid signature") {
		t.Fatalf("expected invalid signature error, got %v", err)
	}

	if fx.payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment mutated on bad signature: %s", fx.payment.Status)
	}
	if len(fx.repo.outbox.entries) != 0 {
		t.Errorf("outbox written on bad signature")
	}

	types := strings.Join(fx.repo.event.types(), ",")
	if !strings.Contains(types, "yappy.ipn.invalid_signature") {
		t.Errorf("missing invalid_signature audit, got %s", types)
	}
}

func TestProcessIPNUnknownPaymentAcks(t *testing.T) {
	repo, fakes := newFakeRepos()
	svc := NewPaymentService(repo, &fakeGateway{verifyOK: true}, zap.NewNop())

	ack, err := svc.ProcessIPN(context.Background(), executedIPN("BKunknown000000"))
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK || ack.Note != "payment not found" {
		t.Errorf("ack = %+v", ack)
	}

	types := strings.Join(fakes.event.types(), ",")
	if !strings.Contains(types, "yappy.ipn.not_found") {
		t.Errorf("missing not_found audit, got %s", types)
	}
}

func TestProcessIPNFallbackLinksRecentPending(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	// Gateway echoes an id we never issued; the lone recent PENDING
	// payment gets adopted.
	ack, err := fx.svc.ProcessIPN(context.Background(), executedIPN("TXGATEWAY001"))
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK {
		t.Error("expected OK ack")
	}

	if fx.payment.ExternalReference != "TXGATEWAY001" {
		t.Errorf("reference not restamped: %s", fx.payment.ExternalReference)
	}
	if fx.payment.Status != entity.PaymentStatusPaid {
		t.Errorf("payment status = %s, want PAID", fx.payment.Status)
	}

	types := strings.Join(fx.repo.event.types(), ",")
	if !strings.Contains(types, "yappy.ipn.linked") {
		t.Errorf("missing linked audit, got %s", types)
	}
}

func TestProcessIPNFallbackIgnoresNonExecuted(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	// Unknown order id and a recent PENDING payment, but the notification
	// is a rejection. Only executed notifications may adopt a payment.
	notif := executedIPN("TXGATEWAY001")
	notif.Status = "R"

	ack, err := fx.svc.ProcessIPN(context.Background(), notif)
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK || ack.Note != "payment not found" {
		t.Errorf("ack = %+v", ack)
	}

	if fx.payment.ExternalReference != "BK1234567890abc" {
		t.Errorf("reference restamped on rejected notification: %s", fx.payment.ExternalReference)
	}
	if fx.payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", fx.payment.Status)
	}

	types := strings.Join(fx.repo.event.types(), ",")
	if strings.Contains(types, "yappy.ipn.linked") {
		t.Errorf("rejected notification linked a payment, got %s", types)
	}
}

func TestProcessIPNFallbackIgnoresStalePending(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	// The only PENDING payment predates the linking window.
	fx.payment.CreatedAt = time.Now().Add(-20 * time.Minute)

	ack, err := fx.svc.ProcessIPN(context.Background(), executedIPN("TXGATEWAY001"))
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK || ack.Note != "payment not found" {
		t.Errorf("ack = %+v", ack)
	}

	if fx.payment.ExternalReference != "BK1234567890abc" {
		t.Errorf("reference restamped on stale payment: %s", fx.payment.ExternalReference)
	}
	if fx.payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", fx.payment.Status)
	}

	types := strings.Join(fx.repo.event.types(), ",")
	if strings.Contains(types, "yappy.ipn.linked") {
		t.Errorf("stale payment was linked, got %s", types)
	}
}

func TestProcessIPNNonExecutedStatusIsAuditOnly(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	notif := executedIPN("BK1234567890abc")
	notif.Status = "R"

	ack, err := fx.svc.ProcessIPN(context.Background(), notif)
	if err != nil {
		t.Fatalf("ProcessIPN: %v", err)
	}
	if !ack.OK {
		t.Error("expected OK ack")
	}

	if fx.payment.Status != entity.PaymentStatusPending {
		t.Errorf("rejected IPN changed payment status: %s", fx.payment.Status)
	}
	if fx.booking.Status != entity.BookingStatusPending {
		t.Errorf("rejected IPN changed booking status: %s", fx.booking.Status)
	}
	if len(fx.repo.outbox.entries) != 0 {
		t.Errorf("rejected IPN enqueued notifications")
	}
}

func TestProcessIPNMissingFields(t *testing.T) {
	repo, _ := newFakeRepos()
	svc := NewPaymentService(repo, &fakeGateway{verifyOK: true}, zap.NewNop())

	_, err := svc.ProcessIPN(context.Background(), &request.IPNNotification{Status: "E"})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePaymentSession(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))

	// Session creation needs the priced service behind the booking.
	fx.repo.service.services = append(fx.repo.service.services, &entity.Service{
		Base:               entity.Base{ID: fx.booking.ServiceID},
		WorkspaceID:        fx.booking.WorkspaceID,
		DurationMinutes:    60,
		PriceCents:         2000,
		DepositType:        entity.DepositTypePercent,
		DepositPercent:     25,
		IsActive:           true,
		DepositAmountCents: 0,
	})
	// Start from a clean payment table so the upsert is observable.
	fx.repo.payment.payments = nil

	resp, err := fx.svc.CreatePaymentSession(context.Background(), "https://booking.example", &request.CreatePaymentSessionRequest{
		BookingID: fx.booking.ID.String(),
	})
	if err != nil {
		t.Fatalf("CreatePaymentSession: %v", err)
	}
	if resp.TransactionID == "" || resp.Token == "" {
		t.Errorf("incomplete session: %+v", resp)
	}

	if len(fx.repo.payment.payments) != 1 {
		t.Fatalf("got %d payments, want 1", len(fx.repo.payment.payments))
	}
	payment := fx.repo.payment.payments[0]
	if payment.AmountCents != 500 {
		t.Errorf("deposit = %d cents, want 500", payment.AmountCents)
	}
	if payment.Status != entity.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", payment.Status)
	}
	if !strings.HasPrefix(payment.ExternalReference, "BK") || len(payment.ExternalReference) != 15 {
		t.Errorf("order id = %q", payment.ExternalReference)
	}
}

func TestCreatePaymentSessionRejectsConfirmedBooking(t *testing.T) {
	fx := seedPaidScenario(t, time.Now().Add(48*time.Hour))
	fx.booking.Status = entity.BookingStatusConfirmed

	_, err := fx.svc.CreatePaymentSession(context.Background(), "https://booking.example", &request.CreatePaymentSessionRequest{
		BookingID: fx.booking.ID.String(),
	})
	if err == nil || !strings.Contains(err.Error(), "cannot") {
		t.Fatalf("expected status error, got %v", err)
	}
}
