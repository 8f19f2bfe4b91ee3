package entities

// CampaignStatus is the lifecycle status of a campaign.
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"
)

// CampaignRole is a user's role on a campaign membership link.
type CampaignRole string

const (
	CampaignRoleAdmin  CampaignRole = "admin"
	CampaignRoleEditor CampaignRole = "editor"
	CampaignRoleViewer CampaignRole = "viewer"
)

// Campaign is a bounded job-search effort owning applications.
type Campaign struct {
	ID          string
	Name        string
	Description string
	Status      CampaignStatus
	Notes       []Note
	StartDate   string
	EndDate     string
	IsDefault   bool
	CreatedAt   string
	UpdatedAt   string
}

// UserCampaign links a user to a campaign with a role. Membership is
// many-to-many; the link is written in the same transaction as the campaign.
type UserCampaign struct {
	UserID     string
	CampaignID string
	Role       CampaignRole
	CreatedAt  string
	UpdatedAt  string
}

// UserDefaultCampaign points at the campaign a user is implicitly operating
// on. At most one exists per user; creating a new default campaign overwrites
// it rather than adding a second pointer.
type UserDefaultCampaign struct {
	UserID     string
	CampaignID string
	CreatedAt  string
	UpdatedAt  string
}
