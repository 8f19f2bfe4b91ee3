package services

import (
	"context"
	"time"

	"jobtrack/application/ports"
	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CampaignsService implements the business rules around campaigns: server-
// assigned IDs, initial status, and memoization of each user's resolved
// default campaign through an injected cache.
type CampaignsService struct {
	repo   ports.CampaignRepository
	cache  ports.DefaultCampaignCache
	logger *zap.Logger
	newID  func() string
}

// NewCampaignsService creates a new CampaignsService
func NewCampaignsService(repo ports.CampaignRepository, cache ports.DefaultCampaignCache, logger *zap.Logger) *CampaignsService {
	return &CampaignsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// CreateCampaignInput is the validated shape for creating a campaign.
type CreateCampaignInput struct {
	Name        string
	Description string
	StartDate   time.Time
	IsDefault   bool
}

// CreateCampaign creates a new campaign for the user with a server-assigned
// id and status active. Creating a default campaign invalidates any cached
// default for that user so the next lookup re-resolves the pointer.
func (s *CampaignsService) CreateCampaign(ctx context.Context, userID string, in CreateCampaignInput) (CampaignDTO, error) {
	s.logger.Debug("creating campaign for user",
		zap.String("userId", userID),
		zap.String("name", in.Name),
	)

	model, err := s.repo.InsertCampaign(ctx, userID, entities.Campaign{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		Status:      entities.CampaignStatusActive,
		Notes:       []entities.Note{},
		StartDate:   formatDate(in.StartDate),
		IsDefault:   in.IsDefault,
	})
	if err != nil {
		s.logger.Error("error creating campaign", zap.Error(err))
		return CampaignDTO{}, err
	}

	if model.IsDefault {
		s.cache.Invalidate(userID)
	}

	return toCampaignDTO(model)
}

// GetCampaignsForUser lists the campaigns the user is a member of.
func (s *CampaignsService) GetCampaignsForUser(ctx context.Context, userID string) ([]CampaignDTO, error) {
	models, err := s.repo.GetCampaignsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]CampaignDTO, 0, len(models))
	for _, model := range models {
		dto, err := toCampaignDTO(model)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}

// GetDefaultCampaign resolves the user's default campaign, consulting the
// cache first. Returns nil (no error) when the user has no default campaign.
func (s *CampaignsService) GetDefaultCampaign(ctx context.Context, userID string) (*CampaignDTO, error) {
	if cached, ok := s.cache.Get(userID); ok {
		dto, err := toCampaignDTO(cached)
		if err != nil {
			return nil, err
		}
		return &dto, nil
	}

	model, err := s.repo.GetDefaultCampaign(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	s.cache.Set(userID, model)

	dto, err := toCampaignDTO(model)
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
