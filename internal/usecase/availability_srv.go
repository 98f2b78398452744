package usecase

import (
	"context"
	"fmt"
	"sort"
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

type AvailabilityService interface {
	// GetAvailability computes the bookable start instants for a
	// (provider, service, civil date) triple in the workspace's zone.
	GetAvailability(ctx context.Context, workspaceSlug string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)

	// StartTimes is the same computation returning raw instants, used by
	// booking creation to re-check a requested slot.
	StartTimes(ctx context.Context, workspace *entity.Workspace, providerID uuid.UUID, service *entity.Service, date string) ([]time.Time, error)
}

type availabilityService struct {
	repo       *repository.Repository
	defaultLoc *time.Location
	log        *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, defaultLoc *time.Location, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:       repo,
		defaultLoc: defaultLoc,
		log:        log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, workspaceSlug string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Availability validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Slugs are stored lowercase; normalize before the lookup.
	slug := strings.ToLower(workspaceSlug)
	workspace, err := s.repo.Workspace.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", slug, err)
	}
	if workspace == nil || !workspace.PublicBookingEnabled {
		return nil, fmt.Errorf("workspace %s not found", slug)
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("invalid provider ID format %s: %w", req.ProviderID, err)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", req.ServiceID, err)
	}
	if service == nil || service.WorkspaceID != workspace.ID {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}
	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("invalid duration %d for service %s", service.DurationMinutes, req.ServiceID)
	}

	starts, err := s.StartTimes(ctx, workspace, providerID, service, req.Date)
	if err != nil {
		return nil, err
	}

	availability := make([]string, len(starts))
	for i, start := range starts {
		availability[i] = start.UTC().Format(time.RFC3339)
	}

	s.log.Info("Availability computed",
		zap.String("workspace", workspaceSlug),
		zap.String("provider_id", req.ProviderID),
		zap.String("date", req.Date),
		zap.Int("slots", len(availability)),
	)

	return &response.AvailabilityResponse{
		Date:         req.Date,
		Availability: availability,
	}, nil
}

func (s *availabilityService) StartTimes(ctx context.Context, workspace *entity.Workspace, providerID uuid.UUID, service *entity.Service, date string) ([]time.Time, error) {
	loc := s.locationFor(workspace)

	// Weekday must be resolved in the workspace zone, never the process TZ.
	weekday, err := utils.WeekdayAt(loc, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	templates, err := s.repo.Slot.FindActiveForWeekday(ctx, workspace.ID, providerID, weekday)
	if err != nil {
		return nil, fmt.Errorf("get slot templates: %w", err)
	}

	dayStart, dayEnd, err := utils.DayBounds(loc, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: %w", date, err)
	}

	bookings, err := s.repo.Booking.FindActiveByProviderOnDay(ctx, workspace.ID, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("get existing bookings: %w", err)
	}

	taken := make([]interval, len(bookings))
	for i, booking := range bookings {
		taken[i] = interval{start: booking.StartAt, end: booking.EndAt}
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	starts, err := computeStartTimes(loc, date, templates, taken, duration)
	if err != nil {
		return nil, err
	}

	return starts, nil
}

func (s *availabilityService) locationFor(workspace *entity.Workspace) *time.Location {
	if workspace.Timezone == "" {
		return s.defaultLoc
	}
	loc, err := time.LoadLocation(workspace.Timezone)
	if err != nil {
		s.log.Warn("Unknown workspace timezone, using default",
			zap.String("workspace", workspace.Slug),
			zap.String("timezone", workspace.Timezone),
		)
		return s.defaultLoc
	}
	return loc
}

// interval is a half-open time range [start, end).
type interval struct {
	start time.Time
	end   time.Time
}

// overlapsAny reports whether [start, end) intersects any taken interval.
// Two half-open intervals overlap iff max(a0,b0) < min(a1,b1).
func overlapsAny(taken []interval, start, end time.Time) bool {
	for _, t := range taken {
		lo := t.start
		if start.After(lo) {
			lo = start
		}
		hi := t.end
		if end.Before(hi) {
			hi = end
		}
		if lo.Before(hi) {
			return true
		}
	}
	return false
}

// computeStartTimes walks every template window in duration-sized steps and
// keeps the candidates that fit the window and clear the taken intervals.
// Slots from all windows are pooled and sorted. Template capacity is
// accepted but not consulted: effective capacity is 1 in this design, any
// overlap excludes the candidate.
func computeStartTimes(loc *time.Location, date string, templates []*entity.Slot, taken []interval, duration time.Duration) ([]time.Time, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("invalid slot duration %s", duration)
	}

	var starts []time.Time
	for _, template := range templates {
		cursor, err := utils.DateAt(loc, date, clockPart(template.StartTime))
		if err != nil {
			return nil, fmt.Errorf("template %s start: %w", template.ID.String(), err)
		}
		windowEnd, err := utils.DateAt(loc, date, clockPart(template.EndTime))
		if err != nil {
			return nil, fmt.Errorf("template %s end: %w", template.ID.String(), err)
		}

		// Back-to-back steps, no padding; a slot is offered only when it
		// fits entirely inside the window.
		for !cursor.Add(duration).After(windowEnd) {
			end := cursor.Add(duration)
			if !overlapsAny(taken, cursor, end) {
				starts = append(starts, cursor)
			}
			cursor = end
		}
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].Before(starts[j])
	})

	return starts, nil
}

// clockPart trims "HH:MM:SS" database time values down to "HH:MM".
func clockPart(value string) string {
	if len(value) > 5 {
		return value[:5]
	}
	return value
}
