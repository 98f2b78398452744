package usecase

import (
	"context"
	"errors"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/pkg/gateway"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each fake keeps its rows in slices or maps
// and mutates them the way the SQL implementation would.

type fakeWorkspaceRepo struct {
	workspaces []*entity.Workspace
}

func (f *fakeWorkspaceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Workspace, error) {
	for _, ws := range f.workspaces {
		if ws.ID == id {
			return ws, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkspaceRepo) FindBySlug(_ context.Context, slug string) (*entity.Workspace, error) {
	for _, ws := range f.workspaces {
		if ws.Slug == slug {
			return ws, nil
		}
	}
	return nil, nil
}

type fakeProviderRepo struct {
	providers []*entity.Provider
}

func (f *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Provider, error) {
	for _, p := range f.providers {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProviderRepo) FindActiveByWorkspaceID(_ context.Context, workspaceID uuid.UUID) ([]*entity.Provider, error) {
	var out []*entity.Provider
	for _, p := range f.providers {
		if p.WorkspaceID == workspaceID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	services []*entity.Service
}

func (f *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeServiceRepo) FindActiveByWorkspaceID(_ context.Context, workspaceID uuid.UUID) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		if s.WorkspaceID == workspaceID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeSlotRepo struct {
	slots []*entity.Slot
}

func (f *fakeSlotRepo) FindActiveForWeekday(_ context.Context, workspaceID, providerID uuid.UUID, weekday int) ([]*entity.Slot, error) {
	var out []*entity.Slot
	for _, s := range f.slots {
		if s.WorkspaceID == workspaceID && s.ProviderID == providerID && s.Weekday == weekday && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindActiveByProviderID(_ context.Context, providerID uuid.UUID) ([]*entity.Slot, error) {
	var out []*entity.Slot
	for _, s := range f.slots {
		if s.ProviderID == providerID && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings []*entity.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	for _, b := range f.bookings {
		if b.ID == bookingID {
			b.Status = status
			return nil
		}
	}
	return errors.New("booking not found")
}

func (f *fakeBookingRepo) FindActiveByProviderOnDay(_ context.Context, workspaceID, providerID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.WorkspaceID == workspaceID && b.ProviderID == providerID &&
			b.Status != entity.BookingStatusCancelled &&
			!b.StartAt.Before(dayStart) && b.StartAt.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
	bookings *fakeBookingRepo
	outbox   *fakeOutboxRepo
}

func (f *fakePaymentRepo) Upsert(_ context.Context, payment *entity.Payment) error {
	for i, p := range f.payments {
		if p.BookingID == payment.BookingID {
			f.payments[i] = payment
			return nil
		}
	}
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.BookingID == bookingID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByProviderReference(_ context.Context, provider, externalReference string) (*entity.Payment, error) {
	for _, p := range f.payments {
		if p.Provider == provider && p.ExternalReference == externalReference {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindLatestPendingSince(_ context.Context, provider string, since time.Time) (*entity.Payment, error) {
	var latest *entity.Payment
	for _, p := range f.payments {
		if p.Provider == provider && p.Status == entity.PaymentStatusPending && !p.CreatedAt.Before(since) {
			if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
				latest = p
			}
		}
	}
	return latest, nil
}

func (f *fakePaymentRepo) StampExternalReference(_ context.Context, paymentID uuid.UUID, externalReference string) error {
	for _, p := range f.payments {
		if p.ID == paymentID {
			p.ExternalReference = externalReference
			return nil
		}
	}
	return errors.New("payment not found")
}

func (f *fakePaymentRepo) MarkPaidIfPending(_ context.Context, paymentID, bookingID uuid.UUID, externalPaymentID string, rawPayload []byte, notifications []*entity.OutboxEntry) (bool, error) {
	for _, p := range f.payments {
		if p.ID != paymentID {
			continue
		}
		if p.Status == entity.PaymentStatusPaid {
			return false, nil
		}
		p.Status = entity.PaymentStatusPaid
		p.ExternalPaymentID = &externalPaymentID
		p.RawPayload = rawPayload
		if f.bookings != nil {
			for _, b := range f.bookings.bookings {
				if b.ID == bookingID {
					b.Status = entity.BookingStatusConfirmed
					b.PaymentStatus = entity.BookingPaymentStatusPaid
				}
			}
		}
		if f.outbox != nil {
			f.outbox.entries = append(f.outbox.entries, notifications...)
		}
		return true, nil
	}
	return false, errors.New("payment not found")
}

type fakeOutboxRepo struct {
	entries []*entity.OutboxEntry
}

func (f *fakeOutboxRepo) Create(_ context.Context, entry *entity.OutboxEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeOutboxRepo) FindDue(_ context.Context, now time.Time, limit int) ([]*entity.OutboxEntry, error) {
	var out []*entity.OutboxEntry
	for _, e := range f.entries {
		if (e.Status == entity.OutboxStatusPending || e.Status == entity.OutboxStatusRetry) && !e.ScheduledAt.After(now) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkSent(_ context.Context, id uuid.UUID, attempts int, sentAt time.Time) error {
	return f.update(id, entity.OutboxStatusSent, attempts, &sentAt, nil, nil)
}

func (f *fakeOutboxRepo) MarkRetry(_ context.Context, id uuid.UUID, attempts int, nextAt time.Time, errMsg string) error {
	return f.update(id, entity.OutboxStatusRetry, attempts, nil, &nextAt, &errMsg)
}

func (f *fakeOutboxRepo) MarkDead(_ context.Context, id uuid.UUID, attempts int, errMsg string) error {
	return f.update(id, entity.OutboxStatusDead, attempts, nil, nil, &errMsg)
}

func (f *fakeOutboxRepo) update(id uuid.UUID, status entity.OutboxStatus, attempts int, sentAt, nextAt *time.Time, errMsg *string) error {
	for _, e := range f.entries {
		if e.ID != id {
			continue
		}
		e.Status = status
		e.Attempts = attempts
		if sentAt != nil {
			e.SentAt = sentAt
		}
		if nextAt != nil {
			e.ScheduledAt = *nextAt
		}
		if errMsg != nil {
			e.Error = errMsg
		}
		return nil
	}
	return errors.New("outbox entry not found")
}

type fakeEventRepo struct {
	events []*entity.Event
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventRepo) types() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

// fakeGateway satisfies PaymentGateway with scripted answers.
type fakeGateway struct {
	verifyOK  bool
	verifyErr error
	session   *gateway.OrderSession
}

func (f *fakeGateway) ValidateMerchant(_ context.Context, origin string) (*gateway.MerchantSession, error) {
	return &gateway.MerchantSession{Token: "merchant-token", URLDomain: origin}, nil
}

func (f *fakeGateway) CreateOrder(_ context.Context, args gateway.CreateOrderArgs) (*gateway.OrderSession, error) {
	if f.session != nil {
		return f.session, nil
	}
	return &gateway.OrderSession{TransactionID: "TX-1", Token: "order-token", DocumentName: "doc"}, nil
}

func (f *fakeGateway) VerifyIPNSignature(orderID, status, domain, hash string) (bool, error) {
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return f.verifyOK, nil
}

// fakeSender records WhatsApp sends and can be scripted to fail.
type fakeSender struct {
	err  error
	sent []string
}

func (f *fakeSender) SendWhatsApp(_ context.Context, to, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, to)
	return "SM123", nil
}

type fakeRepos struct {
	workspace *fakeWorkspaceRepo
	provider  *fakeProviderRepo
	service   *fakeServiceRepo
	slot      *fakeSlotRepo
	booking   *fakeBookingRepo
	payment   *fakePaymentRepo
	outbox    *fakeOutboxRepo
	event     *fakeEventRepo
}

func newFakeRepos() (*repository.Repository, *fakeRepos) {
	f := &fakeRepos{
		workspace: &fakeWorkspaceRepo{},
		provider:  &fakeProviderRepo{},
		service:   &fakeServiceRepo{},
		slot:      &fakeSlotRepo{},
		booking:   &fakeBookingRepo{},
		outbox:    &fakeOutboxRepo{},
		event:     &fakeEventRepo{},
	}
	f.payment = &fakePaymentRepo{bookings: f.booking, outbox: f.outbox}

	repo := &repository.Repository{
		Workspace: f.workspace,
		Provider:  f.provider,
		Service:   f.service,
		Slot:      f.slot,
		Booking:   f.booking,
		Payment:   f.payment,
		Outbox:    f.outbox,
		Event:     f.event,
	}
	return repo, f
}
