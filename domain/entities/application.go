package entities

// ApplicationStatus is the status of a tracked job application.
//
// The nominal progression is applied -> interview -> {offer, rejected}, with
// any status able to move to no-response. Transitions are not enforced
// anywhere; any status in the enum can be assigned directly.
type ApplicationStatus string

const (
	ApplicationStatusApplied    ApplicationStatus = "applied"
	ApplicationStatusInterview  ApplicationStatus = "interview"
	ApplicationStatusOffer      ApplicationStatus = "offer"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
	ApplicationStatusNoResponse ApplicationStatus = "no-response"
)

// ActiveApplicationStatuses are the statuses of applications still in flight.
var ActiveApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusInterview,
}

// CompleteApplicationStatuses are the terminal statuses. Together with
// ActiveApplicationStatuses they partition the enum exactly.
var CompleteApplicationStatuses = []ApplicationStatus{
	ApplicationStatusRejected,
	ApplicationStatusNoResponse,
	ApplicationStatusOffer,
}

// Application is a tracked job application. Every application belongs to
// exactly one campaign; referential integrity is enforced by the service
// layer, not the store.
type Application struct {
	ID         string
	CampaignID string
	Company    string
	Position   string
	Salary     string
	Status     ApplicationStatus
	URL        string
	StartDate  string
	EndDate    string
	Notes      []Note
	CreatedAt  string
	UpdatedAt  string
}
