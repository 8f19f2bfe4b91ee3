package dynamodb

import (
	"time"

	"jobtrack/domain/entities"
)

// Item structs are the storage shape of each entity: the derived pk/sk pair,
// the entity-type tag under `_et`, and the entity attributes. Attribute names
// are part of the table's wire format and must not change.
//
// Timestamps are applied here, not by callers: newXItem stamps createdAt and
// updatedAt on first write, update expressions refresh updatedAt only.

func isoNow(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}

type noteItem struct {
	ID        string `dynamodbav:"id"`
	Content   string `dynamodbav:"content"`
	CreatedAt string `dynamodbav:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

func toNoteItems(notes []entities.Note) []noteItem {
	items := make([]noteItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem(n))
	}
	return items
}

func fromNoteItems(items []noteItem) []entities.Note {
	notes := make([]entities.Note, 0, len(items))
	for _, it := range items {
		notes = append(notes, entities.Note(it))
	}
	return notes
}

type userItem struct {
	PK         string `dynamodbav:"pk"`
	SK         string `dynamodbav:"sk"`
	EntityType string `dynamodbav:"_et"`
	ID         string `dynamodbav:"id"`
	Email      string `dynamodbav:"email"`
	Password   string `dynamodbav:"password"`
	FirstName  string `dynamodbav:"firstName"`
	LastName   string `dynamodbav:"lastName"`
	Status     string `dynamodbav:"status"`
	CreatedAt  string `dynamodbav:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt"`
}

func newUserItem(u entities.User, now time.Time) (userItem, error) {
	key, err := KeyFor(EntityUser, u.Email)
	if err != nil {
		return userItem{}, err
	}
	ts := isoNow(now)
	return userItem{
		PK:         key.PK,
		SK:         key.SK,
		EntityType: string(EntityUser),
		ID:         u.ID,
		Email:      u.Email,
		Password:   u.Password,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Status:     string(u.Status),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}, nil
}

func (it userItem) toEntity() entities.User {
	return entities.User{
		ID:        it.ID,
		Email:     it.Email,
		Password:  it.Password,
		FirstName: it.FirstName,
		LastName:  it.LastName,
		Status:    entities.UserStatus(it.Status),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

type campaignItem struct {
	PK          string     `dynamodbav:"pk"`
	SK          string     `dynamodbav:"sk"`
	EntityType  string     `dynamodbav:"_et"`
	ID          string     `dynamodbav:"id"`
	Name        string     `dynamodbav:"name"`
	Description string     `dynamodbav:"description"`
	Status      string     `dynamodbav:"status"`
	Notes       []noteItem `dynamodbav:"notes"`
	StartDate   string     `dynamodbav:"startDate"`
	EndDate     string     `dynamodbav:"endDate,omitempty"`
	IsDefault   bool       `dynamodbav:"isDefault"`
	CreatedAt   string     `dynamodbav:"createdAt"`
	UpdatedAt   string     `dynamodbav:"updatedAt"`
}

func newCampaignItem(c entities.Campaign, now time.Time) (campaignItem, error) {
	key, err := KeyFor(EntityCampaign, c.ID)
	if err != nil {
		return campaignItem{}, err
	}
	ts := isoNow(now)
	return campaignItem{
		PK:          key.PK,
		SK:          key.SK,
		EntityType:  string(EntityCampaign),
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		Notes:       toNoteItems(c.Notes),
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		IsDefault:   c.IsDefault,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

func (it campaignItem) toEntity() entities.Campaign {
	return entities.Campaign{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Status:      entities.CampaignStatus(it.Status),
		Notes:       fromNoteItems(it.Notes),
		StartDate:   it.StartDate,
		EndDate:     it.EndDate,
		IsDefault:   it.IsDefault,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

type userCampaignItem struct {
	PK         string `dynamodbav:"pk"`
	SK         string `dynamodbav:"sk"`
	EntityType string `dynamodbav:"_et"`
	UserID     string `dynamodbav:"userId"`
	CampaignID string `dynamodbav:"campaignId"`
	Role       string `dynamodbav:"role"`
	CreatedAt  string `dynamodbav:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt"`
}

func newUserCampaignItem(link entities.UserCampaign, now time.Time) (userCampaignItem, error) {
	key, err := KeyFor(EntityUserCampaign, link.UserID, link.CampaignID)
	if err != nil {
		return userCampaignItem{}, err
	}
	ts := isoNow(now)
	return userCampaignItem{
		PK:         key.PK,
		SK:         key.SK,
		EntityType: string(EntityUserCampaign),
		UserID:     link.UserID,
		CampaignID: link.CampaignID,
		Role:       string(link.Role),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}, nil
}

type userDefaultCampaignItem struct {
	PK         string `dynamodbav:"pk"`
	SK         string `dynamodbav:"sk"`
	EntityType string `dynamodbav:"_et"`
	UserID     string `dynamodbav:"userId"`
	CampaignID string `dynamodbav:"campaignId"`
	CreatedAt  string `dynamodbav:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt"`
}

func newUserDefaultCampaignItem(userID, campaignID string, now time.Time) (userDefaultCampaignItem, error) {
	key, err := KeyFor(EntityUserDefaultCampaign, userID)
	if err != nil {
		return userDefaultCampaignItem{}, err
	}
	ts := isoNow(now)
	return userDefaultCampaignItem{
		PK:         key.PK,
		SK:         key.SK,
		EntityType: string(EntityUserDefaultCampaign),
		UserID:     userID,
		CampaignID: campaignID,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}, nil
}

type applicationItem struct {
	PK         string     `dynamodbav:"pk"`
	SK         string     `dynamodbav:"sk"`
	EntityType string     `dynamodbav:"_et"`
	ID         string     `dynamodbav:"id"`
	CampaignID string     `dynamodbav:"campaignId"`
	Company    string     `dynamodbav:"company"`
	Position   string     `dynamodbav:"position"`
	Salary     string     `dynamodbav:"salary"`
	Status     string     `dynamodbav:"status"`
	URL        string     `dynamodbav:"url,omitempty"`
	StartDate  string     `dynamodbav:"startDate"`
	EndDate    string     `dynamodbav:"endDate,omitempty"`
	Notes      []noteItem `dynamodbav:"notes"`
	CreatedAt  string     `dynamodbav:"createdAt"`
	UpdatedAt  string     `dynamodbav:"updatedAt"`
}

func newApplicationItem(app entities.Application, now time.Time) (applicationItem, error) {
	key, err := KeyFor(EntityApplication, app.ID, app.CampaignID)
	if err != nil {
		return applicationItem{}, err
	}
	ts := isoNow(now)
	return applicationItem{
		PK:         key.PK,
		SK:         key.SK,
		EntityType: string(EntityApplication),
		ID:         app.ID,
		CampaignID: app.CampaignID,
		Company:    app.Company,
		Position:   app.Position,
		Salary:     app.Salary,
		Status:     string(app.Status),
		URL:        app.URL,
		StartDate:  app.StartDate,
		EndDate:    app.EndDate,
		Notes:      toNoteItems(app.Notes),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}, nil
}

func (it applicationItem) toEntity() entities.Application {
	return entities.Application{
		ID:         it.ID,
		CampaignID: it.CampaignID,
		Company:    it.Company,
		Position:   it.Position,
		Salary:     it.Salary,
		Status:     entities.ApplicationStatus(it.Status),
		URL:        it.URL,
		StartDate:  it.StartDate,
		EndDate:    it.EndDate,
		Notes:      fromNoteItems(it.Notes),
		CreatedAt:  it.CreatedAt,
		UpdatedAt:  it.UpdatedAt,
	}
}

type taskItem struct {
	PK            string     `dynamodbav:"pk"`
	SK            string     `dynamodbav:"sk"`
	EntityType    string     `dynamodbav:"_et"`
	ID            string     `dynamodbav:"id"`
	ApplicationID string     `dynamodbav:"applicationId"`
	Name          string     `dynamodbav:"name"`
	Description   string     `dynamodbav:"description,omitempty"`
	Status        string     `dynamodbav:"status"`
	Notes         []noteItem `dynamodbav:"notes"`
	DueDate       string     `dynamodbav:"dueDate,omitempty"`
	CreatedAt     string     `dynamodbav:"createdAt"`
	UpdatedAt     string     `dynamodbav:"updatedAt"`
}

func newTaskItem(task entities.Task, now time.Time) (taskItem, error) {
	key, err := KeyFor(EntityTask, task.ID, task.ApplicationID)
	if err != nil {
		return taskItem{}, err
	}
	ts := isoNow(now)
	return taskItem{
		PK:            key.PK,
		SK:            key.SK,
		EntityType:    string(EntityTask),
		ID:            task.ID,
		ApplicationID: task.ApplicationID,
		Name:          task.Name,
		Description:   task.Description,
		Status:        string(task.Status),
		Notes:         toNoteItems(task.Notes),
		DueDate:       task.DueDate,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}, nil
}

func (it taskItem) toEntity() entities.Task {
	return entities.Task{
		ID:            it.ID,
		ApplicationID: it.ApplicationID,
		Name:          it.Name,
		Description:   it.Description,
		Status:        entities.TaskStatus(it.Status),
		Notes:         fromNoteItems(it.Notes),
		DueDate:       it.DueDate,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
