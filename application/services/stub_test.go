package services

import (
	"context"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"
)

// Repository stubs with per-call function fields. Unset calls return
// not-found or no-ops so tests only wire what they assert on.

type stubApplicationRepo struct {
	insertApplication          func(ctx context.Context, app entities.Application) (entities.Application, error)
	updateApplication          func(ctx context.Context, app entities.Application) error
	getApplicationByID         func(ctx context.Context, applicationID, campaignID string) (entities.Application, error)
	getApplicationsForCampaign func(ctx context.Context, campaignID string, statuses []entities.ApplicationStatus) ([]entities.Application, error)
	deleteApplication          func(ctx context.Context, campaignID, applicationID string) error
	insertApplicationNote      func(ctx context.Context, campaignID, applicationID, content string) error
	updateApplicationNote      func(ctx context.Context, campaignID, applicationID, noteID, content string) error
	deleteApplicationNote      func(ctx context.Context, campaignID, applicationID, noteID string) error
	insertTask                 func(ctx context.Context, task entities.Task) (entities.Task, error)
	updateTask                 func(ctx context.Context, task entities.Task) error
	getTaskByID                func(ctx context.Context, taskID, applicationID string) (entities.Task, error)
	getTasksForApplication     func(ctx context.Context, applicationID string) ([]entities.Task, error)
	insertTaskNote             func(ctx context.Context, taskID, applicationID, content string) error
	updateTaskNote             func(ctx context.Context, taskID, applicationID, noteID, content string) error
	deleteTaskNote             func(ctx context.Context, taskID, applicationID, noteID string) error
}

func (s *stubApplicationRepo) InsertApplication(ctx context.Context, app entities.Application) (entities.Application, error) {
	if s.insertApplication == nil {
		return app, nil
	}
	return s.insertApplication(ctx, app)
}

func (s *stubApplicationRepo) UpdateApplication(ctx context.Context, app entities.Application) error {
	if s.updateApplication == nil {
		return nil
	}
	return s.updateApplication(ctx, app)
}

func (s *stubApplicationRepo) GetApplicationByID(ctx context.Context, applicationID, campaignID string) (entities.Application, error) {
	if s.getApplicationByID == nil {
		return entities.Application{}, apperrors.NewNotFoundError("application")
	}
	return s.getApplicationByID(ctx, applicationID, campaignID)
}

func (s *stubApplicationRepo) GetApplicationsForCampaign(ctx context.Context, campaignID string, statuses []entities.ApplicationStatus) ([]entities.Application, error) {
	if s.getApplicationsForCampaign == nil {
		return nil, nil
	}
	return s.getApplicationsForCampaign(ctx, campaignID, statuses)
}

func (s *stubApplicationRepo) DeleteApplication(ctx context.Context, campaignID, applicationID string) error {
	if s.deleteApplication == nil {
		return nil
	}
	return s.deleteApplication(ctx, campaignID, applicationID)
}

func (s *stubApplicationRepo) InsertApplicationNote(ctx context.Context, campaignID, applicationID, content string) error {
	if s.insertApplicationNote == nil {
		return nil
	}
	return s.insertApplicationNote(ctx, campaignID, applicationID, content)
}

func (s *stubApplicationRepo) UpdateApplicationNote(ctx context.Context, campaignID, applicationID, noteID, content string) error {
	if s.updateApplicationNote == nil {
		return nil
	}
	return s.updateApplicationNote(ctx, campaignID, applicationID, noteID, content)
}

func (s *stubApplicationRepo) DeleteApplicationNote(ctx context.Context, campaignID, applicationID, noteID string) error {
	if s.deleteApplicationNote == nil {
		return nil
	}
	return s.deleteApplicationNote(ctx, campaignID, applicationID, noteID)
}

func (s *stubApplicationRepo) InsertTask(ctx context.Context, task entities.Task) (entities.Task, error) {
	if s.insertTask == nil {
		return task, nil
	}
	return s.insertTask(ctx, task)
}

func (s *stubApplicationRepo) UpdateTask(ctx context.Context, task entities.Task) error {
	if s.updateTask == nil {
		return nil
	}
	return s.updateTask(ctx, task)
}

func (s *stubApplicationRepo) GetTaskByID(ctx context.Context, taskID, applicationID string) (entities.Task, error) {
	if s.getTaskByID == nil {
		return entities.Task{}, apperrors.NewNotFoundError("task")
	}
	return s.getTaskByID(ctx, taskID, applicationID)
}

func (s *stubApplicationRepo) GetTasksForApplication(ctx context.Context, applicationID string) ([]entities.Task, error) {
	if s.getTasksForApplication == nil {
		return nil, nil
	}
	return s.getTasksForApplication(ctx, applicationID)
}

func (s *stubApplicationRepo) InsertTaskNote(ctx context.Context, taskID, applicationID, content string) error {
	if s.insertTaskNote == nil {
		return nil
	}
	return s.insertTaskNote(ctx, taskID, applicationID, content)
}

func (s *stubApplicationRepo) UpdateTaskNote(ctx context.Context, taskID, applicationID, noteID, content string) error {
	if s.updateTaskNote == nil {
		return nil
	}
	return s.updateTaskNote(ctx, taskID, applicationID, noteID, content)
}

func (s *stubApplicationRepo) DeleteTaskNote(ctx context.Context, taskID, applicationID, noteID string) error {
	if s.deleteTaskNote == nil {
		return nil
	}
	return s.deleteTaskNote(ctx, taskID, applicationID, noteID)
}

type stubCampaignRepo struct {
	insertCampaign      func(ctx context.Context, userID string, campaign entities.Campaign) (entities.Campaign, error)
	getCampaign         func(ctx context.Context, campaignID string) (entities.Campaign, error)
	getDefaultCampaign  func(ctx context.Context, userID string) (entities.Campaign, error)
	getCampaignsForUser func(ctx context.Context, userID string) ([]entities.Campaign, error)
}

func (s *stubCampaignRepo) InsertCampaign(ctx context.Context, userID string, campaign entities.Campaign) (entities.Campaign, error) {
	if s.insertCampaign == nil {
		return campaign, nil
	}
	return s.insertCampaign(ctx, userID, campaign)
}

func (s *stubCampaignRepo) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	if s.getCampaign == nil {
		return entities.Campaign{}, apperrors.NewNotFoundError("campaign")
	}
	return s.getCampaign(ctx, campaignID)
}

func (s *stubCampaignRepo) GetDefaultCampaign(ctx context.Context, userID string) (entities.Campaign, error) {
	if s.getDefaultCampaign == nil {
		return entities.Campaign{}, apperrors.NewNotFoundError("default campaign")
	}
	return s.getDefaultCampaign(ctx, userID)
}

func (s *stubCampaignRepo) GetCampaignsForUser(ctx context.Context, userID string) ([]entities.Campaign, error) {
	if s.getCampaignsForUser == nil {
		return nil, nil
	}
	return s.getCampaignsForUser(ctx, userID)
}

type stubUserRepo struct {
	insertUser     func(ctx context.Context, user entities.User) (entities.User, error)
	getUserByEmail func(ctx context.Context, email string) (entities.User, error)
}

func (s *stubUserRepo) InsertUser(ctx context.Context, user entities.User) (entities.User, error) {
	if s.insertUser == nil {
		return user, nil
	}
	return s.insertUser(ctx, user)
}

func (s *stubUserRepo) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	if s.getUserByEmail == nil {
		return entities.User{}, apperrors.NewNotFoundError("user")
	}
	return s.getUserByEmail(ctx, email)
}

type stubCache struct {
	entries     map[string]entities.Campaign
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]entities.Campaign)}
}

func (s *stubCache) Get(userID string) (entities.Campaign, bool) {
	c, ok := s.entries[userID]
	return c, ok
}

func (s *stubCache) Set(userID string, campaign entities.Campaign) {
	s.entries[userID] = campaign
}

func (s *stubCache) Invalidate(userID string) {
	s.invalidated = append(s.invalidated, userID)
	delete(s.entries, userID)
}
