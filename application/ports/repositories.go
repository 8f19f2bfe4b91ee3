// Package ports declares the interfaces the service layer depends on.
// Implementations live under infrastructure; tests substitute stubs.
package ports

import (
	"context"

	"jobtrack/domain/entities"
)

// UserRepository persists user accounts keyed by email.
type UserRepository interface {
	InsertUser(ctx context.Context, user entities.User) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
}

// CampaignRepository persists campaigns, membership links, and the per-user
// default-campaign pointer.
type CampaignRepository interface {
	InsertCampaign(ctx context.Context, userID string, campaign entities.Campaign) (entities.Campaign, error)
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	GetDefaultCampaign(ctx context.Context, userID string) (entities.Campaign, error)
	GetCampaignsForUser(ctx context.Context, userID string) ([]entities.Campaign, error)
}

// ApplicationRepository persists applications and their child tasks,
// including the embedded note lists on both.
type ApplicationRepository interface {
	InsertApplication(ctx context.Context, app entities.Application) (entities.Application, error)
	UpdateApplication(ctx context.Context, app entities.Application) error
	GetApplicationByID(ctx context.Context, applicationID, campaignID string) (entities.Application, error)
	GetApplicationsForCampaign(ctx context.Context, campaignID string, statuses []entities.ApplicationStatus) ([]entities.Application, error)
	DeleteApplication(ctx context.Context, campaignID, applicationID string) error

	InsertApplicationNote(ctx context.Context, campaignID, applicationID, content string) error
	UpdateApplicationNote(ctx context.Context, campaignID, applicationID, noteID, content string) error
	DeleteApplicationNote(ctx context.Context, campaignID, applicationID, noteID string) error

	InsertTask(ctx context.Context, task entities.Task) (entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) error
	GetTaskByID(ctx context.Context, taskID, applicationID string) (entities.Task, error)
	GetTasksForApplication(ctx context.Context, applicationID string) ([]entities.Task, error)

	InsertTaskNote(ctx context.Context, taskID, applicationID, content string) error
	UpdateTaskNote(ctx context.Context, taskID, applicationID, noteID, content string) error
	DeleteTaskNote(ctx context.Context, taskID, applicationID, noteID string) error
}

// DefaultCampaignCache memoizes each user's resolved default campaign.
// Implementations are process-local; the contract is explicitly "no eviction,
// process lifetime", which is acceptable only because default-campaign
// lookups are cheap and re-fetchable.
type DefaultCampaignCache interface {
	Get(userID string) (entities.Campaign, bool)
	Set(userID string, campaign entities.Campaign)
	Invalidate(userID string)
}
