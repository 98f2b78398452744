package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/response"
	"booking-platform/pkg/whatsapp"

	"go.uber.org/zap"
)

const (
	outboxMaxAttempts = 5
	outboxRetryDelay  = 5 * time.Minute
)

type OutboxService interface {
	// ProcessBatch drains up to limit due notifications.
	ProcessBatch(ctx context.Context, limit int) (*response.OutboxBatchResponse, error)
}

type outboxService struct {
	repo   *repository.Repository
	sender whatsapp.Sender
	log    *zap.Logger
}

func NewOutboxService(repo *repository.Repository, sender whatsapp.Sender, log *zap.Logger) OutboxService {
	return &outboxService{
		repo:   repo,
		sender: sender,
		log:    log.With(zap.String("service", "outbox")),
	}
}

func (s *outboxService) ProcessBatch(ctx context.Context, limit int) (*response.OutboxBatchResponse, error) {
	now := time.Now()
	entries, err := s.repo.Outbox.FindDue(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch due notifications: %w", err)
	}

	result := &response.OutboxBatchResponse{Processed: len(entries)}

	for _, entry := range entries {
		to := strings.TrimSpace(entry.ToPhone)
		body := strings.TrimSpace(entry.Body)

		if to == "" || body == "" {
			if err := s.repo.Outbox.MarkDead(ctx, entry.ID, entry.Attempts+1, "missing to/body"); err != nil {
				return nil, err
			}
			result.Dead++
			continue
		}

		sid, err := s.sender.SendWhatsApp(ctx, to, body)
		if err != nil {
			attempts := entry.Attempts + 1
			if attempts >= outboxMaxAttempts {
				if err := s.repo.Outbox.MarkDead(ctx, entry.ID, attempts, err.Error()); err != nil {
					return nil, err
				}
				result.Dead++
			} else {
				if err := s.repo.Outbox.MarkRetry(ctx, entry.ID, attempts, time.Now().Add(outboxRetryDelay), err.Error()); err != nil {
					return nil, err
				}
				result.Retried++
			}

			s.log.Warn("Notification delivery failed",
				zap.Error(err),
				zap.String("outbox_id", entry.ID.String()),
				zap.Int("attempts", attempts),
			)
			continue
		}

		if err := s.repo.Outbox.MarkSent(ctx, entry.ID, entry.Attempts+1, time.Now()); err != nil {
			return nil, err
		}
		result.Sent++

		s.log.Info("Notification sent",
			zap.String("outbox_id", entry.ID.String()),
			zap.String("template", entry.Template),
			zap.String("sid", sid),
		)
	}

	return result, nil
}
