package dynamodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBatchDeleteSize is the DynamoDB BatchWriteItem limit per request.
const maxBatchDeleteSize = 25

// TaskDeleteError reports the child tasks that were still present after a
// cascade delete attempt. Batches deleted before the failure are not rolled
// back; the owning application is left in place.
type TaskDeleteError struct {
	ApplicationID string
	FailedTaskIDs []string
}

func (e *TaskDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d task(s) for application %s: %s",
		len(e.FailedTaskIDs), e.ApplicationID, strings.Join(e.FailedTaskIDs, ", "))
}

// ApplicationRepository persists applications and their child tasks, including
// the note lists embedded on both.
type ApplicationRepository struct {
	client API
	table  string
	index  string // inverse GSI: partitioned by sk, sorted by pk
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(client API, table, index string, logger *zap.Logger) *ApplicationRepository {
	return &ApplicationRepository{
		client: client,
		table:  table,
		index:  index,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// InsertApplication writes a new application item and returns the freshly
// re-read entity (read-after-write, not the write response).
func (r *ApplicationRepository) InsertApplication(ctx context.Context, app entities.Application) (entities.Application, error) {
	r.logger.Debug("inserting new application",
		zap.String("applicationId", app.ID),
		zap.String("campaignId", app.CampaignID),
	)

	item, err := newApplicationItem(app, r.now())
	if err != nil {
		return entities.Application{}, apperrors.NewValidationError(err.Error())
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Application{}, apperrors.NewInternalError("failed to marshal application").WithCause(err)
	}

	if _, err := r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	}); err != nil {
		return entities.Application{}, apperrors.NewDatabaseError("PutItem", err)
	}

	return r.GetApplicationByID(ctx, app.ID, app.CampaignID)
}

// UpdateApplication merges the mutable fields of an application. Immutable
// fields (id, campaignId, createdAt) and the note list are excluded from the
// update so they cannot be clobbered; updatedAt is refreshed.
func (r *ApplicationRepository) UpdateApplication(ctx context.Context, app entities.Application) error {
	key, err := KeyFor(EntityApplication, app.ID, app.CampaignID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	update := expression.
		Set(expression.Name("company"), expression.Value(app.Company)).
		Set(expression.Name("position"), expression.Value(app.Position)).
		Set(expression.Name("salary"), expression.Value(app.Salary)).
		Set(expression.Name("status"), expression.Value(string(app.Status))).
		Set(expression.Name("url"), expression.Value(app.URL)).
		Set(expression.Name("startDate"), expression.Value(app.StartDate)).
		Set(expression.Name("endDate"), expression.Value(app.EndDate)).
		Set(expression.Name("updatedAt"), expression.Value(isoNow(r.now())))

	return r.applyUpdate(ctx, key, update, "UpdateApplication")
}

// GetApplicationByID retrieves an application by its ID and campaign ID.
func (r *ApplicationRepository) GetApplicationByID(ctx context.Context, applicationID, campaignID string) (entities.Application, error) {
	r.logger.Debug("getting application",
		zap.String("applicationId", applicationID),
		zap.String("campaignId", campaignID),
	)

	key, err := KeyFor(EntityApplication, applicationID, campaignID)
	if err != nil {
		return entities.Application{}, apperrors.NewValidationError(err.Error())
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	})
	if err != nil {
		return entities.Application{}, apperrors.NewDatabaseError("GetItem", err)
	}
	if out.Item == nil {
		return entities.Application{}, apperrors.NewNotFoundError("application")
	}

	var item applicationItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return entities.Application{}, apperrors.NewInternalError("failed to unmarshal application").WithCause(err)
	}
	if item.ID == "" {
		return entities.Application{}, apperrors.NewNotFoundError("application")
	}

	return item.toEntity(), nil
}

// GetApplicationsForCampaign queries the inverse index for all applications of
// a campaign. A non-empty status set is pushed down as a filter expression.
func (r *ApplicationRepository) GetApplicationsForCampaign(ctx context.Context, campaignID string, statuses []entities.ApplicationStatus) ([]entities.Application, error) {
	keyCond := expression.Key("sk").Equal(expression.Value(InversePartition(EntityApplication, campaignID)))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	if len(statuses) > 0 {
		operands := make([]expression.OperandBuilder, 0, len(statuses))
		for _, s := range statuses {
			operands = append(operands, expression.Value(string(s)))
		}
		builder = builder.WithFilter(expression.Name("status").In(operands[0], operands[1:]...))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query expression").WithCause(err)
	}

	out, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.index),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("Query", err)
	}

	apps := make([]entities.Application, 0, len(out.Items))
	for _, raw := range out.Items {
		var item applicationItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("failed to unmarshal application item", zap.Error(err))
			continue
		}
		apps = append(apps, item.toEntity())
	}

	return apps, nil
}

// DeleteApplication cascade-deletes an application: child tasks are read
// first (fail-closed: if the read fails, nothing is deleted), then removed in
// batches, then the application item itself is deleted. The cascade is not
// transactional; when a batch leaves tasks undeleted the application is kept
// and the surviving task IDs are reported via TaskDeleteError.
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, campaignID, applicationID string) error {
	tasks, err := r.GetTasksForApplication(ctx, applicationID)
	if err != nil {
		r.logger.Error("error getting tasks for cascade delete",
			zap.String("applicationId", applicationID),
			zap.Error(err),
		)
		return err
	}

	if failed := r.batchDeleteTasks(ctx, applicationID, tasks); len(failed) > 0 {
		return &TaskDeleteError{ApplicationID: applicationID, FailedTaskIDs: failed}
	}

	key, err := KeyFor(EntityApplication, applicationID, campaignID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	if _, err := r.client.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	}); err != nil {
		return apperrors.NewDatabaseError("DeleteItem", err)
	}

	return nil
}

// batchDeleteTasks deletes tasks in chunks of maxBatchDeleteSize and returns
// the IDs of tasks that could not be deleted. Earlier batches are not rolled
// back when a later one fails.
func (r *ApplicationRepository) batchDeleteTasks(ctx context.Context, applicationID string, tasks []entities.Task) []string {
	var failed []string

	for start := 0; start < len(tasks); start += maxBatchDeleteSize {
		end := start + maxBatchDeleteSize
		if end > len(tasks) {
			end = len(tasks)
		}
		chunk := tasks[start:end]

		requests := make([]types.WriteRequest, 0, len(chunk))
		for _, task := range chunk {
			key, err := KeyFor(EntityTask, task.ID, applicationID)
			if err != nil {
				failed = append(failed, task.ID)
				continue
			}
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: attributeKey(key)},
			})
		}

		out, err := r.client.BatchWriteItem(ctx, &awsdynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.table: requests},
		})
		if err != nil {
			r.logger.Error("batch task delete failed",
				zap.String("applicationId", applicationID),
				zap.Error(err),
			)
			for _, task := range chunk {
				failed = append(failed, task.ID)
			}
			continue
		}

		for _, req := range out.UnprocessedItems[r.table] {
			if req.DeleteRequest == nil {
				continue
			}
			if pk, ok := req.DeleteRequest.Key["pk"].(*types.AttributeValueMemberS); ok {
				failed = append(failed, strings.TrimPrefix(pk.Value, "TASK#"))
			}
		}
	}

	return failed
}

// InsertApplicationNote prepends a freshly built note to the application's
// note list in a single update; the existing list is never read first.
func (r *ApplicationRepository) InsertApplicationNote(ctx context.Context, campaignID, applicationID, content string) error {
	r.logger.Debug("adding note to application",
		zap.String("campaignId", campaignID),
		zap.String("applicationId", applicationID),
	)

	key, err := KeyFor(EntityApplication, applicationID, campaignID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.prependNote(ctx, key, content, "InsertApplicationNote")
}

// UpdateApplicationNote replaces the content and updatedAt of the note with
// the given id, leaving every other note untouched. Read-modify-write: a
// concurrent note edit on the same item can be lost (last writer wins).
func (r *ApplicationRepository) UpdateApplicationNote(ctx context.Context, campaignID, applicationID, noteID, content string) error {
	app, err := r.GetApplicationByID(ctx, applicationID, campaignID)
	if err != nil {
		return err
	}

	notes, found := entities.UpdateNote(app.Notes, noteID, content, r.now())
	if !found {
		return apperrors.NewNotFoundError("note")
	}

	key, err := KeyFor(EntityApplication, applicationID, campaignID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.overwriteNotes(ctx, key, notes, "UpdateApplicationNote")
}

// DeleteApplicationNote removes the note with the given id from the
// application's note list. Same read-modify-write caveat as note updates.
func (r *ApplicationRepository) DeleteApplicationNote(ctx context.Context, campaignID, applicationID, noteID string) error {
	app, err := r.GetApplicationByID(ctx, applicationID, campaignID)
	if err != nil {
		return err
	}

	notes, found := entities.RemoveNote(app.Notes, noteID)
	if !found {
		return apperrors.NewNotFoundError("note")
	}

	key, err := KeyFor(EntityApplication, applicationID, campaignID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.overwriteNotes(ctx, key, notes, "DeleteApplicationNote")
}

// InsertTask writes a new task item and returns the freshly re-read entity.
func (r *ApplicationRepository) InsertTask(ctx context.Context, task entities.Task) (entities.Task, error) {
	r.logger.Debug("inserting task",
		zap.String("taskId", task.ID),
		zap.String("applicationId", task.ApplicationID),
	)

	item, err := newTaskItem(task, r.now())
	if err != nil {
		return entities.Task{}, apperrors.NewValidationError(err.Error())
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Task{}, apperrors.NewInternalError("failed to marshal task").WithCause(err)
	}

	if _, err := r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	}); err != nil {
		return entities.Task{}, apperrors.NewDatabaseError("PutItem", err)
	}

	return r.GetTaskByID(ctx, task.ID, task.ApplicationID)
}

// UpdateTask merges the mutable fields of a task; the note list and
// identifying fields are excluded.
func (r *ApplicationRepository) UpdateTask(ctx context.Context, task entities.Task) error {
	key, err := KeyFor(EntityTask, task.ID, task.ApplicationID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	update := expression.
		Set(expression.Name("name"), expression.Value(task.Name)).
		Set(expression.Name("description"), expression.Value(task.Description)).
		Set(expression.Name("status"), expression.Value(string(task.Status))).
		Set(expression.Name("dueDate"), expression.Value(task.DueDate)).
		Set(expression.Name("updatedAt"), expression.Value(isoNow(r.now())))

	return r.applyUpdate(ctx, key, update, "UpdateTask")
}

// GetTaskByID retrieves a task by its ID and application ID.
func (r *ApplicationRepository) GetTaskByID(ctx context.Context, taskID, applicationID string) (entities.Task, error) {
	r.logger.Debug("getting task",
		zap.String("taskId", taskID),
		zap.String("applicationId", applicationID),
	)

	key, err := KeyFor(EntityTask, taskID, applicationID)
	if err != nil {
		return entities.Task{}, apperrors.NewValidationError(err.Error())
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	})
	if err != nil {
		return entities.Task{}, apperrors.NewDatabaseError("GetItem", err)
	}
	if out.Item == nil {
		return entities.Task{}, apperrors.NewNotFoundError("task")
	}

	var item taskItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return entities.Task{}, apperrors.NewInternalError("failed to unmarshal task").WithCause(err)
	}
	if item.ID == "" {
		return entities.Task{}, apperrors.NewNotFoundError("task")
	}

	return item.toEntity(), nil
}

// GetTasksForApplication queries the inverse index for all tasks of an
// application.
func (r *ApplicationRepository) GetTasksForApplication(ctx context.Context, applicationID string) ([]entities.Task, error) {
	keyCond := expression.Key("sk").Equal(expression.Value(InversePartition(EntityTask, applicationID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query expression").WithCause(err)
	}

	out, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		IndexName:                 aws.String(r.index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("Query", err)
	}

	tasks := make([]entities.Task, 0, len(out.Items))
	for _, raw := range out.Items {
		var item taskItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("failed to unmarshal task item", zap.Error(err))
			continue
		}
		tasks = append(tasks, item.toEntity())
	}

	return tasks, nil
}

// InsertTaskNote prepends a freshly built note to the task's note list.
func (r *ApplicationRepository) InsertTaskNote(ctx context.Context, taskID, applicationID, content string) error {
	key, err := KeyFor(EntityTask, taskID, applicationID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.prependNote(ctx, key, content, "InsertTaskNote")
}

// UpdateTaskNote replaces the content of the identified note on a task.
// Read-modify-write: concurrent edits race, last writer wins.
func (r *ApplicationRepository) UpdateTaskNote(ctx context.Context, taskID, applicationID, noteID, content string) error {
	task, err := r.GetTaskByID(ctx, taskID, applicationID)
	if err != nil {
		return err
	}

	notes, found := entities.UpdateNote(task.Notes, noteID, content, r.now())
	if !found {
		return apperrors.NewNotFoundError("note")
	}

	key, err := KeyFor(EntityTask, taskID, applicationID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.overwriteNotes(ctx, key, notes, "UpdateTaskNote")
}

// DeleteTaskNote removes the identified note from a task's note list.
func (r *ApplicationRepository) DeleteTaskNote(ctx context.Context, taskID, applicationID, noteID string) error {
	task, err := r.GetTaskByID(ctx, taskID, applicationID)
	if err != nil {
		return err
	}

	notes, found := entities.RemoveNote(task.Notes, noteID)
	if !found {
		return apperrors.NewNotFoundError("note")
	}

	key, err := KeyFor(EntityTask, taskID, applicationID)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return r.overwriteNotes(ctx, key, notes, "DeleteTaskNote")
}

// prependNote builds a new note and merges it at the front of the item's note
// list with list_append, keeping the most-recent-first invariant without a
// prior read.
func (r *ApplicationRepository) prependNote(ctx context.Context, key Key, content, operation string) error {
	ts := isoNow(r.now())
	note := noteItem{
		ID:        r.newID(),
		Content:   content,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	update := expression.
		Set(expression.Name("updatedAt"), expression.Value(ts)).
		Set(
			expression.Name("notes"),
			expression.ListAppend(
				expression.Value([]noteItem{note}),
				expression.IfNotExists(expression.Name("notes"), expression.Value([]noteItem{})),
			),
		)

	return r.applyUpdate(ctx, key, update, operation)
}

// overwriteNotes replaces the full note list of the item at key.
func (r *ApplicationRepository) overwriteNotes(ctx context.Context, key Key, notes []entities.Note, operation string) error {
	update := expression.
		Set(expression.Name("notes"), expression.Value(toNoteItems(notes))).
		Set(expression.Name("updatedAt"), expression.Value(isoNow(r.now())))

	return r.applyUpdate(ctx, key, update, operation)
}

func (r *ApplicationRepository) applyUpdate(ctx context.Context, key Key, update expression.UpdateBuilder, operation string) error {
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build update expression").WithCause(err)
	}

	if _, err := r.client.UpdateItem(ctx, &awsdynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       attributeKey(key),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}); err != nil {
		return apperrors.NewDatabaseError(operation, err)
	}

	return nil
}
