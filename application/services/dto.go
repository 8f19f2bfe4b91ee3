package services

import (
	"time"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"
)

// DTOs are the external-facing shapes returned to route handlers: dates are
// real time.Time values, optional dates are pointers, and password hashes are
// never included. Entities keep the string-encoded storage form.

// NoteDTO is a note with coerced timestamps.
type NoteDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskDTO is a follow-up task with coerced dates.
type TaskDTO struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      entities.TaskStatus `json:"status"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
	Notes       []NoteDTO           `json:"notes"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ApplicationDTO is an application with coerced dates and, when composed by
// GetApplication, its child tasks newest-first.
type ApplicationDTO struct {
	ID        string                      `json:"id"`
	Company   string                      `json:"company"`
	Position  string                      `json:"position"`
	Salary    string                      `json:"salary"`
	URL       string                      `json:"url,omitempty"`
	Status    entities.ApplicationStatus  `json:"status"`
	StartDate time.Time                   `json:"startDate"`
	EndDate   *time.Time                  `json:"endDate,omitempty"`
	Notes     []NoteDTO                   `json:"notes"`
	Tasks     []TaskDTO                   `json:"tasks"`
}

// CampaignDTO is a campaign with coerced dates.
type CampaignDTO struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Status      entities.CampaignStatus `json:"status"`
	Notes       []NoteDTO               `json:"notes"`
	StartDate   time.Time               `json:"startDate"`
	EndDate     *time.Time              `json:"endDate,omitempty"`
	IsDefault   bool                    `json:"isDefault"`
}

// UserDTO is a user account without the credential hash.
type UserDTO struct {
	ID        string              `json:"id"`
	Email     string              `json:"email"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	Status    entities.UserStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func parseStoredTime(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.NewInternalError("invalid stored timestamp for " + field).WithCause(err)
	}
	return t, nil
}

func parseOptionalStoredTime(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseStoredTime(value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toNoteDTOs(notes []entities.Note) ([]NoteDTO, error) {
	dtos := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		createdAt, err := parseStoredTime(n.CreatedAt, "note.createdAt")
		if err != nil {
			return nil, err
		}
		updatedAt, err := parseStoredTime(n.UpdatedAt, "note.updatedAt")
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, NoteDTO{
			ID:        n.ID,
			Content:   n.Content,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}
	return dtos, nil
}

func toTaskDTO(task entities.Task) (TaskDTO, error) {
	notes, err := toNoteDTOs(task.Notes)
	if err != nil {
		return TaskDTO{}, err
	}
	createdAt, err := parseStoredTime(task.CreatedAt, "task.createdAt")
	if err != nil {
		return TaskDTO{}, err
	}
	dueDate, err := parseOptionalStoredTime(task.DueDate, "task.dueDate")
	if err != nil {
		return TaskDTO{}, err
	}
	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     dueDate,
		Notes:       notes,
		CreatedAt:   createdAt,
	}, nil
}

func toApplicationDTO(app entities.Application) (ApplicationDTO, error) {
	notes, err := toNoteDTOs(app.Notes)
	if err != nil {
		return ApplicationDTO{}, err
	}
	startDate, err := parseStoredTime(app.StartDate, "application.startDate")
	if err != nil {
		return ApplicationDTO{}, err
	}
	endDate, err := parseOptionalStoredTime(app.EndDate, "application.endDate")
	if err != nil {
		return ApplicationDTO{}, err
	}
	return ApplicationDTO{
		ID:        app.ID,
		Company:   app.Company,
		Position:  app.Position,
		Salary:    app.Salary,
		URL:       app.URL,
		Status:    app.Status,
		StartDate: startDate,
		EndDate:   endDate,
		Notes:     notes,
		Tasks:     []TaskDTO{},
	}, nil
}

func toCampaignDTO(campaign entities.Campaign) (CampaignDTO, error) {
	notes, err := toNoteDTOs(campaign.Notes)
	if err != nil {
		return CampaignDTO{}, err
	}
	startDate, err := parseStoredTime(campaign.StartDate, "campaign.startDate")
	if err != nil {
		return CampaignDTO{}, err
	}
	endDate, err := parseOptionalStoredTime(campaign.EndDate, "campaign.endDate")
	if err != nil {
		return CampaignDTO{}, err
	}
	return CampaignDTO{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Description: campaign.Description,
		Status:      campaign.Status,
		Notes:       notes,
		StartDate:   startDate,
		EndDate:     endDate,
		IsDefault:   campaign.IsDefault,
	}, nil
}

func toUserDTO(user entities.User) (UserDTO, error) {
	createdAt, err := parseStoredTime(user.CreatedAt, "user.createdAt")
	if err != nil {
		return UserDTO{}, err
	}
	updatedAt, err := parseStoredTime(user.UpdatedAt, "user.updatedAt")
	if err != nil {
		return UserDTO{}, err
	}
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Status:    user.Status,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
