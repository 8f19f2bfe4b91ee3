package handlers

import (
	"context"
	"net/http"
	"time"

	"jobtrack/application/services"
	"jobtrack/pkg/auth"
	"jobtrack/pkg/common"
	"jobtrack/pkg/validation"

	"go.uber.org/zap"
)

// CampaignService is the slice of the campaigns service the routes need.
type CampaignService interface {
	CreateCampaign(ctx context.Context, userID string, in services.CreateCampaignInput) (services.CampaignDTO, error)
	GetCampaignsForUser(ctx context.Context, userID string) ([]services.CampaignDTO, error)
	GetDefaultCampaign(ctx context.Context, userID string) (*services.CampaignDTO, error)
}

// CampaignHandler serves campaign creation and lookup.
type CampaignHandler struct {
	campaigns CampaignService
	logger    *zap.Logger
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaigns CampaignService, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns, logger: logger}
}

type createCampaignRequest struct {
	Name        string    `json:"name" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	IsDefault   bool      `json:"isDefault"`
}

// CreateCampaign creates a campaign owned by the session user.
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	var req createCampaignRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	campaign, err := h.campaigns.CreateCampaign(r.Context(), session.UserID, services.CreateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, campaign)
}

// ListCampaigns returns every campaign the session user belongs to.
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	campaigns, err := h.campaigns.GetCampaignsForUser(r.Context(), session.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, campaigns)
}

// GetDefaultCampaign returns the session user's default campaign, or a null
// payload when none is set.
func (h *CampaignHandler) GetDefaultCampaign(w http.ResponseWriter, r *http.Request) {
	session, err := auth.SessionFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	campaign, err := h.campaigns.GetDefaultCampaign(r.Context(), session.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	if campaign == nil {
		common.RespondJSON(w, http.StatusOK, nil)
		return
	}

	common.RespondJSON(w, http.StatusOK, campaign)
}
