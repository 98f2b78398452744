package usecase

import (
	"context"
	"fmt"
	"strings"

	"booking-platform/internal/data/repository"
	"booking-platform/internal/dto/response"

	"go.uber.org/zap"
)

type WorkspaceService interface {
	// GetMeta returns what the public booking page needs for a workspace.
	GetMeta(ctx context.Context, slug string) (*response.WorkspaceMetaResponse, error)
}

type workspaceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWorkspaceService(repo *repository.Repository, log *zap.Logger) WorkspaceService {
	return &workspaceService{
		repo: repo,
		log:  log.With(zap.String("service", "workspace")),
	}
}

func (s *workspaceService) GetMeta(ctx context.Context, slug string) (*response.WorkspaceMetaResponse, error) {
	// Slugs are stored lowercase; normalize before the lookup.
	slug = strings.ToLower(slug)
	workspace, err := s.repo.Workspace.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", slug, err)
	}
	if workspace == nil || !workspace.PublicBookingEnabled {
		return nil, fmt.Errorf("workspace %s not found", slug)
	}

	services, err := s.repo.Service.FindActiveByWorkspaceID(ctx, workspace.ID)
	if err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}

	providers, err := s.repo.Provider.FindActiveByWorkspaceID(ctx, workspace.ID)
	if err != nil {
		return nil, fmt.Errorf("get providers: %w", err)
	}

	meta := &response.WorkspaceMetaResponse{
		Slug:     workspace.Slug,
		Name:     workspace.Name,
		Timezone: workspace.Timezone,
	}
	for _, service := range services {
		meta.Services = append(meta.Services, response.ServiceToMeta(service))
	}
	for _, provider := range providers {
		slots, err := s.repo.Slot.FindActiveByProviderID(ctx, provider.ID)
		if err != nil {
			return nil, fmt.Errorf("get slot templates: %w", err)
		}
		meta.Providers = append(meta.Providers, response.ProviderToMeta(provider, slots))
	}

	return meta, nil
}
