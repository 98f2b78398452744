package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booking-platform/internal/data/entity"
	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/request"
	"booking-platform/internal/dto/response"
	"booking-platform/pkg/gateway"
	"booking-platform/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const paymentProviderYappy = "YAPPY"

// IPN status codes: E=executed (paid), R=rejected, C=cancelled, X=expired.
const ipnStatusExecuted = "E"

// fallbackLinkWindow bounds how far back the handler searches for a
// PENDING payment when the gateway echoes an order id we never issued.
const fallbackLinkWindow = 15 * time.Minute

// PaymentGateway is the slice of the gateway client the payment flow
// consumes; fakes implement it in tests.
type PaymentGateway interface {
	ValidateMerchant(ctx context.Context, origin string) (*gateway.MerchantSession, error)
	CreateOrder(ctx context.Context, args gateway.CreateOrderArgs) (*gateway.OrderSession, error)
	VerifyIPNSignature(orderID, status, domain, hash string) (bool, error)
}

type PaymentService interface {
	// CreatePaymentSession opens a gateway order for a booking's deposit.
	CreatePaymentSession(ctx context.Context, origin string, req *request.CreatePaymentSessionRequest) (*response.PaymentSessionResponse, error)

	// ProcessIPN reconciles one asynchronous payment notification. Safe to
	// invoke any number of times with the same parameters.
	ProcessIPN(ctx context.Context, notif *request.IPNNotification) (*response.IPNAck, error)
}

type paymentService struct {
	repo    *repository.Repository
	gateway PaymentGateway
	log     *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw PaymentGateway, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:    repo,
		gateway: gw,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePaymentSession(ctx context.Context, origin string, req *request.CreatePaymentSessionRequest) (*response.PaymentSessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create payment session validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", req.BookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", req.BookingID)
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("booking status is %s, cannot start payment", booking.Status)
	}

	workspace, err := s.repo.Workspace.FindByID(ctx, booking.WorkspaceID)
	if err != nil || workspace == nil {
		return nil, fmt.Errorf("workspace for booking %s not found", req.BookingID)
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil || service == nil {
		return nil, fmt.Errorf("service for booking %s not found", req.BookingID)
	}

	alias := utils.YappyAlias(booking.CustomerPhone)
	if alias == "" {
		return nil, fmt.Errorf("invalid customer phone for booking %s", req.BookingID)
	}

	depositCents := service.DepositCents()
	totalStr := fmt.Sprintf("%d.%02d", depositCents/100, depositCents%100)

	merchant, err := s.gateway.ValidateMerchant(ctx, origin)
	if err != nil {
		s.log.Error("Merchant validation failed", zap.Error(err))
		return nil, fmt.Errorf("validate merchant: %w", err)
	}

	orderID := utils.BuildOrderID(bookingID)
	ipnURL := fmt.Sprintf("%s/api/webhooks/yappy?orderId=%s&workspace=%s", origin, orderID, workspace.Slug)

	order, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderArgs{
		Token:      merchant.Token,
		OrderID:    orderID,
		Domain:     merchant.URLDomain,
		AliasYappy: alias,
		Total:      totalStr,
		IPNURL:     ipnURL,
	})
	if err != nil {
		s.log.Error("Order creation failed",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:         bookingID,
		WorkspaceID:       booking.WorkspaceID,
		Provider:          paymentProviderYappy,
		ExternalReference: orderID,
		ExternalID:        &order.TransactionID,
		AmountCents:       depositCents,
		Status:            entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	s.log.Info("Payment session created",
		zap.String("booking_id", req.BookingID),
		zap.String("order_id", orderID),
		zap.Int64("amount_cents", depositCents),
	)

	return &response.PaymentSessionResponse{
		TransactionID: order.TransactionID,
		Token:         order.Token,
		DocumentName:  order.DocumentName,
	}, nil
}

func (s *paymentService) ProcessIPN(ctx context.Context, notif *request.IPNNotification) (*response.IPNAck, error) {
	raw, _ := json.Marshal(notif)

	// Audit before any decision. A failed insert here is logged but does
	// not block the reconciliation.
	s.audit(ctx, nil, "yappy.ipn.received", raw)

	reference := notif.Reference()
	if reference == "" || notif.Status == "" || notif.Domain == "" || notif.Hash == "" {
		s.audit(ctx, nil, "yappy.ipn.bad_request", raw)
		return nil, fmt.Errorf("validation failed: orderId, status, domain and hash are required")
	}

	ok, err := s.gateway.VerifyIPNSignature(reference, notif.Status, notif.Domain, notif.Hash)
	if err != nil {
		if errors.Is(err, gateway.ErrMissingSecret) {
			s.log.Error("IPN rejected: secret not configured")
			return nil, fmt.Errorf("gateway secret not configured: %w", err)
		}
		return nil, fmt.Errorf("verify signature: %w", err)
	}
	if !ok {
		s.audit(ctx, nil, "yappy.ipn.invalid_signature", raw)
		s.log.Warn("IPN signature mismatch", zap.String("order_id", reference))
		return nil, fmt.Errorf("invalid signature for order %s", reference)
	}

	payment, err := s.repo.Payment.FindByProviderReference(ctx, paymentProviderYappy, reference)
	if err != nil {
		return nil, fmt.Errorf("lookup payment %s: %w", reference, err)
	}

	// Fallback linking: the gateway sometimes notifies with an id that was
	// not the one echoed at order creation. For an executed payment, adopt
	// the most recent PENDING payment of the trailing window. Heuristic,
	// can misattribute under concurrent load; see DESIGN.md.
	if payment == nil && notif.Status == ipnStatusExecuted {
		candidate, err := s.repo.Payment.FindLatestPendingSince(ctx, paymentProviderYappy, time.Now().Add(-fallbackLinkWindow))
		if err != nil {
			return nil, fmt.Errorf("fallback payment lookup: %w", err)
		}
		if candidate != nil {
			if err := s.repo.Payment.StampExternalReference(ctx, candidate.ID, reference); err != nil {
				return nil, fmt.Errorf("stamp fallback reference: %w", err)
			}
			candidate.ExternalReference = reference
			payment = candidate
			s.audit(ctx, &candidate.WorkspaceID, "yappy.ipn.linked", raw)
			s.log.Warn("IPN linked to payment by fallback",
				zap.String("order_id", reference),
				zap.String("payment_id", candidate.ID.String()),
			)
		}
	}

	if payment == nil {
		// Acknowledge anyway: returning an error would only trigger a
		// retry storm for a notification we can never match.
		s.audit(ctx, nil, "yappy.ipn.not_found", raw)
		s.log.Warn("IPN for unknown payment", zap.String("order_id", reference))
		return &response.IPNAck{OK: true, Note: "payment not found"}, nil
	}

	if notif.Status != ipnStatusExecuted {
		s.audit(ctx, &payment.WorkspaceID, "yappy.ipn", raw)
		s.log.Info("IPN with non-executed status",
			zap.String("order_id", reference),
			zap.String("ipn_status", notif.Status),
		)
		return &response.IPNAck{OK: true}, nil
	}

	if payment.Status == entity.PaymentStatusPaid {
		s.log.Info("IPN replay for already paid payment",
			zap.String("order_id", reference),
			zap.String("payment_id", payment.ID.String()),
		)
		return &response.IPNAck{OK: true, Note: "already paid"}, nil
	}

	externalPaymentID := notif.ConfirmationNumber
	if externalPaymentID == "" {
		externalPaymentID = reference
	}

	// Built before the transition so a lookup failure surfaces as 5xx
	// while the payment is still PENDING and the gateway retry can land.
	notifications, err := s.buildNotifications(ctx, payment)
	if err != nil {
		s.log.Error("Notification preparation failed",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
			zap.ByteString("payload", raw),
		)
		return nil, fmt.Errorf("prepare notifications for payment %s: %w", payment.ID.String(), err)
	}

	updated, err := s.repo.Payment.MarkPaidIfPending(ctx, payment.ID, payment.BookingID, externalPaymentID, raw, notifications)
	if err != nil {
		s.log.Error("Paid transition failed",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
			zap.ByteString("payload", raw),
		)
		return nil, fmt.Errorf("mark payment %s paid: %w", payment.ID.String(), err)
	}
	if !updated {
		// Concurrent delivery won the conditional update.
		s.log.Info("Paid transition already applied",
			zap.String("payment_id", payment.ID.String()),
		)
		return &response.IPNAck{OK: true, Note: "already paid"}, nil
	}

	s.audit(ctx, &payment.WorkspaceID, "payment.confirmed", raw)
	s.audit(ctx, &payment.WorkspaceID, "booking.confirmed", raw)

	s.log.Info("Payment reconciled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", payment.BookingID.String()),
		zap.String("order_id", reference),
	)

	return &response.IPNAck{OK: true}, nil
}

// buildNotifications assembles the confirmation message plus the 24h and
// 3h reminders for the paid transition. Reminders whose fire time already
// passed are skipped. The rows are inserted by the repository inside the
// same transaction that flips the payment.
func (s *paymentService) buildNotifications(ctx context.Context, payment *entity.Payment) ([]*entity.OutboxEntry, error) {
	booking, err := s.repo.Booking.FindByID(ctx, payment.BookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s missing", payment.BookingID.String())
	}

	workspace, err := s.repo.Workspace.FindByID(ctx, booking.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	workspaceName := "tu reserva"
	loc := time.UTC
	if workspace != nil {
		workspaceName = workspace.Name
		if parsed, err := time.LoadLocation(workspace.Timezone); err == nil {
			loc = parsed
		}
	}

	now := time.Now()
	localStart := booking.StartAt.In(loc)
	when := localStart.Format("02/01/2006 15:04")

	notifications := []struct {
		template    string
		body        string
		scheduledAt time.Time
	}{
		{
			template:    "booking_confirmed",
			body:        fmt.Sprintf("¡Pago recibido! Tu reserva en %s quedó confirmada para el %s.", workspaceName, when),
			scheduledAt: now,
		},
		{
			template:    "reminder_24h",
			body:        fmt.Sprintf("Recordatorio: tienes una reserva en %s mañana a las %s.", workspaceName, localStart.Format("15:04")),
			scheduledAt: booking.StartAt.Add(-24 * time.Hour),
		},
		{
			template:    "reminder_3h",
			body:        fmt.Sprintf("Recordatorio: tu reserva en %s es hoy a las %s.", workspaceName, localStart.Format("15:04")),
			scheduledAt: booking.StartAt.Add(-3 * time.Hour),
		},
	}

	var entries []*entity.OutboxEntry
	for _, n := range notifications {
		if n.template != "booking_confirmed" && n.scheduledAt.Before(now) {
			continue
		}

		entries = append(entries, &entity.OutboxEntry{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			WorkspaceID: booking.WorkspaceID,
			ToPhone:     utils.NormalizePA(booking.CustomerPhone),
			Template:    n.template,
			Body:        n.body,
			Payload:     []byte(fmt.Sprintf(`{"booking_id":%q}`, booking.ID.String())),
			Status:      entity.OutboxStatusPending,
			ScheduledAt: n.scheduledAt,
		})
	}

	return entries, nil
}

// audit writes an event row; failures are logged and swallowed so that
// audit trouble never masks the reconciliation outcome.
func (s *paymentService) audit(ctx context.Context, workspaceID *uuid.UUID, eventType string, payload []byte) {
	event := &entity.Event{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		WorkspaceID: workspaceID,
		Source:      "webhook",
		Type:        eventType,
		Payload:     payload,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to write audit event",
			zap.Error(err),
			zap.String("type", eventType),
		)
	}
}
