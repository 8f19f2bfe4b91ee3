package handlers

import (
	"context"
	"net/http"
	"time"

	"jobtrack/application/services"
	"jobtrack/domain/entities"
	"jobtrack/pkg/common"
	apperrors "jobtrack/pkg/errors"
	"jobtrack/pkg/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ApplicationService is the slice of the applications service the routes
// need. Task routes live on TaskHandler.
type ApplicationService interface {
	CreateApplication(ctx context.Context, campaignID string, in services.CreateApplicationInput) (services.ApplicationDTO, error)
	UpdateApplication(ctx context.Context, campaignID string, in services.UpdateApplicationInput) error
	GetApplication(ctx context.Context, campaignID, applicationID string) (services.ApplicationDTO, error)
	GetActiveApplications(ctx context.Context, campaignID string) ([]services.ApplicationDTO, error)
	GetCompleteApplications(ctx context.Context, campaignID string) ([]services.ApplicationDTO, error)
	DeleteApplication(ctx context.Context, campaignID, applicationID string) error
	BulkDeleteApplications(ctx context.Context, campaignID string, applicationIDs []string) error
	AddApplicationNote(ctx context.Context, campaignID, applicationID, content string) error
	UpdateApplicationNote(ctx context.Context, campaignID, applicationID, noteID, content string) error
	DeleteApplicationNote(ctx context.Context, campaignID, applicationID, noteID string) error
}

// ApplicationHandler serves the application routes nested under a campaign.
type ApplicationHandler struct {
	applications ApplicationService
	logger       *zap.Logger
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applications ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, logger: logger}
}

type createApplicationRequest struct {
	Company   string    `json:"company" validate:"required,max=200"`
	Position  string    `json:"position" validate:"required,max=200"`
	Salary    string    `json:"salary" validate:"max=100"`
	URL       string    `json:"url" validate:"omitempty,url"`
	StartDate time.Time `json:"startDate" validate:"required"`
}

type updateApplicationRequest struct {
	Company   string     `json:"company" validate:"required,max=200"`
	Position  string     `json:"position" validate:"required,max=200"`
	Salary    string     `json:"salary" validate:"max=100"`
	URL       string     `json:"url" validate:"omitempty,url"`
	Status    string     `json:"status" validate:"required,oneof=applied interview offer rejected no-response"`
	StartDate time.Time  `json:"startDate" validate:"required"`
	EndDate   *time.Time `json:"endDate"`
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type noteRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// CreateApplication creates an application under the campaign in the path.
func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var req createApplicationRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	application, err := h.applications.CreateApplication(r.Context(), campaignID, services.CreateApplicationInput{
		Company:   req.Company,
		Position:  req.Position,
		Salary:    req.Salary,
		URL:       req.URL,
		StartDate: req.StartDate,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, application)
}

// ListApplications returns the campaign's applications filtered by lifecycle
// stage. The status query parameter selects "active" (default) or "complete".
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var (
		applications []services.ApplicationDTO
		err          error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "", "active":
		applications, err = h.applications.GetActiveApplications(r.Context(), campaignID)
	case "complete":
		applications, err = h.applications.GetCompleteApplications(r.Context(), campaignID)
	default:
		common.RespondAppError(w, apperrors.NewValidationError("status must be active or complete"))
		return
	}
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, applications)
}

// GetApplication returns one application with its tasks, newest task first.
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")

	application, err := h.applications.GetApplication(r.Context(), campaignID, applicationID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, application)
}

// UpdateApplication replaces the mutable fields of an application.
func (h *ApplicationHandler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")

	var req updateApplicationRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	err := h.applications.UpdateApplication(r.Context(), campaignID, services.UpdateApplicationInput{
		ID:        applicationID,
		Company:   req.Company,
		Position:  req.Position,
		Salary:    req.Salary,
		URL:       req.URL,
		Status:    entities.ApplicationStatus(req.Status),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// DeleteApplication cascade-deletes an application and its tasks.
func (h *ApplicationHandler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")

	if err := h.applications.DeleteApplication(r.Context(), campaignID, applicationID); err != nil {
		h.logger.Error("delete application failed",
			zap.String("applicationId", applicationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// BulkDeleteApplications deletes several applications in one request. The
// deletions run sequentially and stop at the first failure.
func (h *ApplicationHandler) BulkDeleteApplications(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var req bulkDeleteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.applications.BulkDeleteApplications(r.Context(), campaignID, req.IDs); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// AddNote prepends a note to an application.
func (h *ApplicationHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")

	var req noteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.applications.AddApplicationNote(r.Context(), campaignID, applicationID, req.Content); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, nil)
}

// UpdateNote replaces the content of an existing application note.
func (h *ApplicationHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")
	noteID := chi.URLParam(r, "noteID")

	var req noteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.applications.UpdateApplicationNote(r.Context(), campaignID, applicationID, noteID, req.Content); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// DeleteNote removes a note from an application.
func (h *ApplicationHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")
	applicationID := chi.URLParam(r, "applicationID")
	noteID := chi.URLParam(r, "noteID")

	if err := h.applications.DeleteApplicationNote(r.Context(), campaignID, applicationID, noteID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}
