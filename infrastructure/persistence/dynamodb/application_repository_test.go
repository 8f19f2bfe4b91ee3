package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestApplicationRepo(client API) *ApplicationRepository {
	repo := NewApplicationRepository(client, "test-table", "GSI_INVERSE", zap.NewNop())
	repo.now = func() time.Time { return fixedNow }
	repo.newID = func() string { return "note-fixed" }
	return repo
}

func marshalApplication(t *testing.T, app entities.Application) map[string]types.AttributeValue {
	t.Helper()
	item, err := newApplicationItem(app, fixedNow)
	require.NoError(t, err)
	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)
	return av
}

func marshalTask(t *testing.T, task entities.Task) map[string]types.AttributeValue {
	t.Helper()
	item, err := newTaskItem(task, fixedNow)
	require.NoError(t, err)
	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)
	return av
}

func TestInsertApplicationReturnsReRead(t *testing.T) {
	app := entities.Application{
		ID:         "app-1",
		CampaignID: "camp-1",
		Company:    "Acme",
		Position:   "Engineer",
		Status:     entities.ApplicationStatusApplied,
		StartDate:  "2025-05-01T00:00:00Z",
		Notes:      []entities.Note{},
	}

	var putKey string
	client := &stubClient{
		putItem: func(_ context.Context, params *awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error) {
			if pk, ok := params.Item["pk"].(*types.AttributeValueMemberS); ok {
				putKey = pk.Value
			}
			return &awsdynamodb.PutItemOutput{}, nil
		},
		getItem: func(_ context.Context, params *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: marshalApplication(t, app)}, nil
		},
	}

	got, err := newTestApplicationRepo(client).InsertApplication(context.Background(), app)
	require.NoError(t, err)

	assert.Equal(t, "APPLICATION#app-1", putKey)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, isoNow(fixedNow), got.CreatedAt, "entity comes from the re-read, timestamps stamped")
}

func TestGetApplicationsForCampaignQueriesInverseIndex(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := &stubClient{
		query: func(_ context.Context, params *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = params
			return &awsdynamodb.QueryOutput{}, nil
		},
	}

	_, err := newTestApplicationRepo(client).GetApplicationsForCampaign(
		context.Background(), "camp-1", entities.ActiveApplicationStatuses)
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "GSI_INVERSE", *captured.IndexName)
	assert.NotNil(t, captured.FilterExpression, "status set is pushed down as a filter")

	values := make([]string, 0, len(captured.ExpressionAttributeValues))
	for _, v := range captured.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			values = append(values, s.Value)
		}
	}
	assert.Contains(t, values, "APPLICATION#camp-1")
	assert.Contains(t, values, "applied")
	assert.Contains(t, values, "interview")
	assert.NotContains(t, values, "offer")
}

func TestGetApplicationsForCampaignNoFilterWithoutStatuses(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := &stubClient{
		query: func(_ context.Context, params *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = params
			return &awsdynamodb.QueryOutput{}, nil
		},
	}

	_, err := newTestApplicationRepo(client).GetApplicationsForCampaign(context.Background(), "camp-1", nil)
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Nil(t, captured.FilterExpression)
}

func makeTasks(n int) []entities.Task {
	tasks := make([]entities.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, entities.Task{
			ID:            fmt.Sprintf("task-%d", i),
			ApplicationID: "app-1",
			Name:          "follow up",
			Status:        entities.TaskStatusActive,
		})
	}
	return tasks
}

func tasksQueryStub(t *testing.T, tasks []entities.Task) func(context.Context, *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
	items := make([]map[string]types.AttributeValue, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, marshalTask(t, task))
	}
	return func(_ context.Context, _ *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
		return &awsdynamodb.QueryOutput{Items: items}, nil
	}
}

func TestDeleteApplicationCascadesInBatches(t *testing.T) {
	var batchSizes []int
	var appDeleted bool

	client := &stubClient{}
	client.query = tasksQueryStub(t, makeTasks(60))
	client.batchWriteItem = func(_ context.Context, params *awsdynamodb.BatchWriteItemInput) (*awsdynamodb.BatchWriteItemOutput, error) {
		batchSizes = append(batchSizes, len(params.RequestItems["test-table"]))
		return &awsdynamodb.BatchWriteItemOutput{}, nil
	}
	client.deleteItem = func(_ context.Context, params *awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error) {
		appDeleted = true
		pk := params.Key["pk"].(*types.AttributeValueMemberS)
		assert.Equal(t, "APPLICATION#app-1", pk.Value)
		return &awsdynamodb.DeleteItemOutput{}, nil
	}

	err := newTestApplicationRepo(client).DeleteApplication(context.Background(), "camp-1", "app-1")
	require.NoError(t, err)

	assert.Equal(t, []int{25, 25, 10}, batchSizes, "tasks chunked at the BatchWriteItem limit")
	assert.True(t, appDeleted, "application item deleted last")
}

func TestDeleteApplicationFailsClosedOnTaskReadError(t *testing.T) {
	var wroteAnything bool

	client := &stubClient{
		query: func(_ context.Context, _ *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			return nil, errors.New("throttled")
		},
		batchWriteItem: func(_ context.Context, _ *awsdynamodb.BatchWriteItemInput) (*awsdynamodb.BatchWriteItemOutput, error) {
			wroteAnything = true
			return &awsdynamodb.BatchWriteItemOutput{}, nil
		},
		deleteItem: func(_ context.Context, _ *awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error) {
			wroteAnything = true
			return &awsdynamodb.DeleteItemOutput{}, nil
		},
	}

	err := newTestApplicationRepo(client).DeleteApplication(context.Background(), "camp-1", "app-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsDatabase(err))
	assert.False(t, wroteAnything, "nothing deleted when the task read fails")
}

func TestDeleteApplicationReportsSurvivingTasks(t *testing.T) {
	var appDeleted bool
	calls := 0

	client := &stubClient{}
	client.query = tasksQueryStub(t, makeTasks(30))
	client.batchWriteItem = func(_ context.Context, params *awsdynamodb.BatchWriteItemInput) (*awsdynamodb.BatchWriteItemOutput, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("batch failed")
		}
		return &awsdynamodb.BatchWriteItemOutput{}, nil
	}
	client.deleteItem = func(_ context.Context, _ *awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error) {
		appDeleted = true
		return &awsdynamodb.DeleteItemOutput{}, nil
	}

	err := newTestApplicationRepo(client).DeleteApplication(context.Background(), "camp-1", "app-1")
	require.Error(t, err)

	var taskErr *TaskDeleteError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, "app-1", taskErr.ApplicationID)
	assert.Len(t, taskErr.FailedTaskIDs, 5, "only the failed batch's tasks are reported")
	assert.False(t, appDeleted, "application kept while tasks survive")
}

func TestDeleteApplicationCollectsUnprocessedItems(t *testing.T) {
	client := &stubClient{}
	client.query = tasksQueryStub(t, makeTasks(3))
	client.batchWriteItem = func(_ context.Context, _ *awsdynamodb.BatchWriteItemInput) (*awsdynamodb.BatchWriteItemOutput, error) {
		return &awsdynamodb.BatchWriteItemOutput{
			UnprocessedItems: map[string][]types.WriteRequest{
				"test-table": {{
					DeleteRequest: &types.DeleteRequest{
						Key: map[string]types.AttributeValue{
							"pk": &types.AttributeValueMemberS{Value: "TASK#task-2"},
							"sk": &types.AttributeValueMemberS{Value: "TASK#app-1"},
						},
					},
				}},
			},
		}, nil
	}

	err := newTestApplicationRepo(client).DeleteApplication(context.Background(), "camp-1", "app-1")
	require.Error(t, err)

	var taskErr *TaskDeleteError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, []string{"task-2"}, taskErr.FailedTaskIDs)
}

func TestInsertApplicationNotePrependsWithoutRead(t *testing.T) {
	var gotItemCalled bool
	var captured *awsdynamodb.UpdateItemInput

	client := &stubClient{
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			gotItemCalled = true
			return &awsdynamodb.GetItemOutput{}, nil
		},
		updateItem: func(_ context.Context, params *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			captured = params
			return &awsdynamodb.UpdateItemOutput{}, nil
		},
	}

	err := newTestApplicationRepo(client).InsertApplicationNote(context.Background(), "camp-1", "app-1", "called recruiter")
	require.NoError(t, err)

	assert.False(t, gotItemCalled, "prepend is a single update, no prior read")
	require.NotNil(t, captured)
	expr := *captured.UpdateExpression
	assert.True(t, strings.Contains(expr, "list_append"), "expression %q", expr)
	assert.True(t, strings.Contains(expr, "if_not_exists"), "expression %q", expr)

	pk := captured.Key["pk"].(*types.AttributeValueMemberS)
	assert.Equal(t, "APPLICATION#app-1", pk.Value)
}

func TestUpdateApplicationNoteReplacesSingleNote(t *testing.T) {
	app := entities.Application{
		ID:         "app-1",
		CampaignID: "camp-1",
		Company:    "Acme",
		Position:   "Engineer",
		Status:     entities.ApplicationStatusApplied,
		StartDate:  "2025-05-01T00:00:00Z",
		Notes: []entities.Note{
			{ID: "n2", Content: "newer", CreatedAt: "2025-05-02T00:00:00Z", UpdatedAt: "2025-05-02T00:00:00Z"},
			{ID: "n1", Content: "older", CreatedAt: "2025-05-01T00:00:00Z", UpdatedAt: "2025-05-01T00:00:00Z"},
		},
	}

	var captured *awsdynamodb.UpdateItemInput
	client := &stubClient{
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: marshalApplication(t, app)}, nil
		},
		updateItem: func(_ context.Context, params *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			captured = params
			return &awsdynamodb.UpdateItemOutput{}, nil
		},
	}

	err := newTestApplicationRepo(client).UpdateApplicationNote(context.Background(), "camp-1", "app-1", "n1", "rewritten")
	require.NoError(t, err)
	require.NotNil(t, captured, "full note list written back")

	var values []string
	for _, v := range captured.ExpressionAttributeValues {
		if list, ok := v.(*types.AttributeValueMemberL); ok {
			for _, el := range list.Value {
				if m, ok := el.(*types.AttributeValueMemberM); ok {
					if content, ok := m.Value["content"].(*types.AttributeValueMemberS); ok {
						values = append(values, content.Value)
					}
				}
			}
		}
	}
	assert.Contains(t, values, "rewritten")
	assert.Contains(t, values, "newer", "untouched notes survive the overwrite")
	assert.NotContains(t, values, "older")
}

func TestUpdateApplicationNoteMissingNote(t *testing.T) {
	app := entities.Application{
		ID:         "app-1",
		CampaignID: "camp-1",
		Company:    "Acme",
		Position:   "Engineer",
		Status:     entities.ApplicationStatusApplied,
		StartDate:  "2025-05-01T00:00:00Z",
		Notes:      []entities.Note{},
	}

	var updated bool
	client := &stubClient{
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: marshalApplication(t, app)}, nil
		},
		updateItem: func(_ context.Context, _ *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			updated = true
			return &awsdynamodb.UpdateItemOutput{}, nil
		},
	}

	err := newTestApplicationRepo(client).UpdateApplicationNote(context.Background(), "camp-1", "app-1", "ghost", "content")
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, updated)
}

func TestUpdateApplicationExcludesNotes(t *testing.T) {
	var captured *awsdynamodb.UpdateItemInput
	client := &stubClient{
		updateItem: func(_ context.Context, params *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error) {
			captured = params
			return &awsdynamodb.UpdateItemOutput{}, nil
		},
	}

	err := newTestApplicationRepo(client).UpdateApplication(context.Background(), entities.Application{
		ID:         "app-1",
		CampaignID: "camp-1",
		Company:    "Acme",
		Position:   "Engineer",
		Status:     entities.ApplicationStatusInterview,
		StartDate:  "2025-05-01T00:00:00Z",
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	for _, name := range captured.ExpressionAttributeNames {
		assert.NotEqual(t, "notes", name, "update must not clobber the note list")
		assert.NotEqual(t, "createdAt", name, "createdAt is immutable")
	}
}

func TestGetTaskByIDNotFound(t *testing.T) {
	client := &stubClient{
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{}, nil
		},
	}

	_, err := newTestApplicationRepo(client).GetTaskByID(context.Background(), "task-1", "app-1")
	assert.True(t, apperrors.IsNotFound(err))
}
