package services

import (
	"context"
	"sort"
	"time"

	"jobtrack/application/ports"
	"jobtrack/domain/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ApplicationsService implements the business rules around applications and
// their child tasks: server-assigned IDs, initial statuses, date coercion,
// and composition of applications with their tasks.
//
// Status transitions are deliberately not validated here; any enum value can
// be assigned directly.
type ApplicationsService struct {
	repo   ports.ApplicationRepository
	logger *zap.Logger
	newID  func() string
}

// NewApplicationsService creates a new ApplicationsService
func NewApplicationsService(repo ports.ApplicationRepository, logger *zap.Logger) *ApplicationsService {
	return &ApplicationsService{
		repo:   repo,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// CreateApplicationInput is the validated shape for creating an application.
type CreateApplicationInput struct {
	Company   string
	Position  string
	Salary    string
	URL       string
	StartDate time.Time
}

// UpdateApplicationInput is the validated shape for updating an application.
// Notes are absent: they evolve only through the dedicated note operations.
type UpdateApplicationInput struct {
	ID        string
	Company   string
	Position  string
	Salary    string
	URL       string
	Status    entities.ApplicationStatus
	StartDate time.Time
	EndDate   *time.Time
}

// CreateTaskInput is the validated shape for adding a task to an application.
type CreateTaskInput struct {
	Name        string
	Description string
	DueDate     *time.Time
}

// UpdateTaskInput is the validated shape for updating a task.
type UpdateTaskInput struct {
	ID          string
	Name        string
	Description string
	Status      entities.TaskStatus
	DueDate     *time.Time
}

// CreateApplication creates a new application for a campaign with a
// server-assigned id, status applied, and an empty note list.
func (s *ApplicationsService) CreateApplication(ctx context.Context, campaignID string, in CreateApplicationInput) (ApplicationDTO, error) {
	model, err := s.repo.InsertApplication(ctx, entities.Application{
		ID:         s.newID(),
		CampaignID: campaignID,
		Company:    in.Company,
		Position:   in.Position,
		Salary:     in.Salary,
		URL:        in.URL,
		Status:     entities.ApplicationStatusApplied,
		StartDate:  formatDate(in.StartDate),
		Notes:      []entities.Note{},
	})
	if err != nil {
		return ApplicationDTO{}, err
	}

	return toApplicationDTO(model)
}

// UpdateApplication updates the mutable fields of an application. Existing
// notes are preserved: the update path never carries them.
func (s *ApplicationsService) UpdateApplication(ctx context.Context, campaignID string, in UpdateApplicationInput) error {
	return s.repo.UpdateApplication(ctx, entities.Application{
		ID:         in.ID,
		CampaignID: campaignID,
		Company:    in.Company,
		Position:   in.Position,
		Salary:     in.Salary,
		URL:        in.URL,
		Status:     in.Status,
		StartDate:  formatDate(in.StartDate),
		EndDate:    formatOptionalDate(in.EndDate),
	})
}

// GetApplication retrieves an application together with its child tasks,
// sorted by creation time descending (newest first).
func (s *ApplicationsService) GetApplication(ctx context.Context, campaignID, applicationID string) (ApplicationDTO, error) {
	model, err := s.repo.GetApplicationByID(ctx, applicationID, campaignID)
	if err != nil {
		return ApplicationDTO{}, err
	}

	dto, err := toApplicationDTO(model)
	if err != nil {
		return ApplicationDTO{}, err
	}

	tasks, err := s.repo.GetTasksForApplication(ctx, applicationID)
	if err != nil {
		return ApplicationDTO{}, err
	}

	dto.Tasks = make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		taskDTO, err := toTaskDTO(task)
		if err != nil {
			return ApplicationDTO{}, err
		}
		dto.Tasks = append(dto.Tasks, taskDTO)
	}

	sort.Slice(dto.Tasks, func(i, j int) bool {
		return dto.Tasks[i].CreatedAt.After(dto.Tasks[j].CreatedAt)
	})

	return dto, nil
}

// GetActiveApplications returns the campaign's applications still in flight
// (status applied or interview).
func (s *ApplicationsService) GetActiveApplications(ctx context.Context, campaignID string) ([]ApplicationDTO, error) {
	return s.getApplicationsWithFilter(ctx, campaignID, entities.ActiveApplicationStatuses)
}

// GetCompleteApplications returns the campaign's applications that reached a
// terminal status (rejected, no-response, or offer).
func (s *ApplicationsService) GetCompleteApplications(ctx context.Context, campaignID string) ([]ApplicationDTO, error) {
	return s.getApplicationsWithFilter(ctx, campaignID, entities.CompleteApplicationStatuses)
}

func (s *ApplicationsService) getApplicationsWithFilter(ctx context.Context, campaignID string, statuses []entities.ApplicationStatus) ([]ApplicationDTO, error) {
	models, err := s.repo.GetApplicationsForCampaign(ctx, campaignID, statuses)
	if err != nil {
		s.logger.Error("could not get applications",
			zap.String("campaignId", campaignID),
			zap.Error(err),
		)
		return nil, err
	}

	dtos := make([]ApplicationDTO, 0, len(models))
	for _, model := range models {
		dto, err := toApplicationDTO(model)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}

	return dtos, nil
}

// DeleteApplication cascade-deletes an application and its tasks.
func (s *ApplicationsService) DeleteApplication(ctx context.Context, campaignID, applicationID string) error {
	return s.repo.DeleteApplication(ctx, campaignID, applicationID)
}

// BulkDeleteApplications deletes the given applications one by one. The loop
// is sequential; a failure stops it and earlier deletions stand.
func (s *ApplicationsService) BulkDeleteApplications(ctx context.Context, campaignID string, applicationIDs []string) error {
	for _, applicationID := range applicationIDs {
		if err := s.repo.DeleteApplication(ctx, campaignID, applicationID); err != nil {
			return err
		}
	}
	return nil
}

// AddApplicationNote prepends a note to an application.
func (s *ApplicationsService) AddApplicationNote(ctx context.Context, campaignID, applicationID, content string) error {
	return s.repo.InsertApplicationNote(ctx, campaignID, applicationID, content)
}

// UpdateApplicationNote replaces the content of an existing application note.
func (s *ApplicationsService) UpdateApplicationNote(ctx context.Context, campaignID, applicationID, noteID, content string) error {
	return s.repo.UpdateApplicationNote(ctx, campaignID, applicationID, noteID, content)
}

// DeleteApplicationNote removes a note from an application.
func (s *ApplicationsService) DeleteApplicationNote(ctx context.Context, campaignID, applicationID, noteID string) error {
	return s.repo.DeleteApplicationNote(ctx, campaignID, applicationID, noteID)
}

// AddTaskToApplication creates a new task under an application with a
// server-assigned id, status active, and an empty note list.
func (s *ApplicationsService) AddTaskToApplication(ctx context.Context, applicationID string, in CreateTaskInput) (TaskDTO, error) {
	model, err := s.repo.InsertTask(ctx, entities.Task{
		ID:            s.newID(),
		ApplicationID: applicationID,
		Name:          in.Name,
		Description:   in.Description,
		Status:        entities.TaskStatusActive,
		DueDate:       formatOptionalDate(in.DueDate),
		Notes:         []entities.Note{},
	})
	if err != nil {
		s.logger.Error("error inserting task",
			zap.String("applicationId", applicationID),
			zap.Error(err),
		)
		return TaskDTO{}, err
	}

	return toTaskDTO(model)
}

// GetTask fetches a task by application and task id.
func (s *ApplicationsService) GetTask(ctx context.Context, applicationID, taskID string) (TaskDTO, error) {
	model, err := s.repo.GetTaskByID(ctx, taskID, applicationID)
	if err != nil {
		s.logger.Error("could not get task for application",
			zap.String("taskId", taskID),
			zap.Error(err),
		)
		return TaskDTO{}, err
	}

	return toTaskDTO(model)
}

// UpdateTask updates the mutable fields of a task.
func (s *ApplicationsService) UpdateTask(ctx context.Context, applicationID string, in UpdateTaskInput) error {
	return s.repo.UpdateTask(ctx, entities.Task{
		ID:            in.ID,
		ApplicationID: applicationID,
		Name:          in.Name,
		Description:   in.Description,
		Status:        in.Status,
		DueDate:       formatOptionalDate(in.DueDate),
	})
}

// AddTaskNote prepends a note to a task.
func (s *ApplicationsService) AddTaskNote(ctx context.Context, applicationID, taskID, content string) error {
	s.logger.Debug("adding task note",
		zap.String("taskId", taskID),
		zap.String("applicationId", applicationID),
	)
	return s.repo.InsertTaskNote(ctx, taskID, applicationID, content)
}

// UpdateTaskNote replaces the content of an existing task note.
func (s *ApplicationsService) UpdateTaskNote(ctx context.Context, applicationID, taskID, noteID, content string) error {
	return s.repo.UpdateTaskNote(ctx, taskID, applicationID, noteID, content)
}

// DeleteTaskNote removes a note from a task.
func (s *ApplicationsService) DeleteTaskNote(ctx context.Context, applicationID, taskID, noteID string) error {
	return s.repo.DeleteTaskNote(ctx, taskID, applicationID, noteID)
}
