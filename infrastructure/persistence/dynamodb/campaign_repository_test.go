package dynamodb

import (
	"context"
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

func newTestCampaignRepo(client API) *CampaignRepository {
	repo := NewCampaignRepository(client, "test-table", zap.NewNop())
	repo.now = func() time.Time { return fixedNow }
	return repo
}

func marshalCampaign(t *testing.T, c entities.Campaign) map[string]types.AttributeValue {
	t.Helper()
	item, err := newCampaignItem(c, fixedNow)
	require.NoError(t, err)
	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)
	return av
}

func testCampaign(isDefault bool) entities.Campaign {
	return entities.Campaign{
		ID:        "camp-1",
		Name:      "Summer search",
		Status:    entities.CampaignStatusActive,
		Notes:     []entities.Note{},
		StartDate: "2025-05-01T00:00:00Z",
		IsDefault: isDefault,
	}
}

func TestInsertCampaignWritesCampaignAndLinkAtomically(t *testing.T) {
	var captured *awsdynamodb.TransactWriteItemsInput
	client := &stubClient{
		transactWriteItems: func(_ context.Context, params *awsdynamodb.TransactWriteItemsInput) (*awsdynamodb.TransactWriteItemsOutput, error) {
			captured = params
			return &awsdynamodb.TransactWriteItemsOutput{}, nil
		},
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: marshalCampaign(t, testCampaign(false))}, nil
		},
	}

	got, err := newTestCampaignRepo(client).InsertCampaign(context.Background(), "user-1", testCampaign(false))
	require.NoError(t, err)

	require.NotNil(t, captured)
	require.Len(t, captured.TransactItems, 2, "campaign plus membership link")

	var pks []string
	for _, item := range captured.TransactItems {
		require.NotNil(t, item.Put)
		pk := item.Put.Item["pk"].(*types.AttributeValueMemberS)
		pks = append(pks, pk.Value)
	}
	assert.Contains(t, pks, "camp-1")
	assert.Contains(t, pks, "user-1")
	assert.Equal(t, "Summer search", got.Name)
}

func TestInsertDefaultCampaignAddsPointer(t *testing.T) {
	var captured *awsdynamodb.TransactWriteItemsInput
	client := &stubClient{
		transactWriteItems: func(_ context.Context, params *awsdynamodb.TransactWriteItemsInput) (*awsdynamodb.TransactWriteItemsOutput, error) {
			captured = params
			return &awsdynamodb.TransactWriteItemsOutput{}, nil
		},
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: marshalCampaign(t, testCampaign(true))}, nil
		},
	}

	_, err := newTestCampaignRepo(client).InsertCampaign(context.Background(), "user-1", testCampaign(true))
	require.NoError(t, err)

	require.NotNil(t, captured)
	require.Len(t, captured.TransactItems, 3, "pointer rides in the same transaction")

	var pks []string
	for _, item := range captured.TransactItems {
		pk := item.Put.Item["pk"].(*types.AttributeValueMemberS)
		pks = append(pks, pk.Value)
	}
	assert.Contains(t, pks, "CAMPAIGN#user-1")
}

func TestGetDefaultCampaignFollowsPointer(t *testing.T) {
	var requestedPKs []string
	client := &stubClient{}
	client.getItem = func(_ context.Context, params *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
		pk := params.Key["pk"].(*types.AttributeValueMemberS).Value
		requestedPKs = append(requestedPKs, pk)

		if pk == "CAMPAIGN#user-1" {
			pointer, err := newUserDefaultCampaignItem("user-1", "camp-1", fixedNow)
			require.NoError(t, err)
			av, err := attributevalue.MarshalMap(pointer)
			require.NoError(t, err)
			return &awsdynamodb.GetItemOutput{Item: av}, nil
		}
		return &awsdynamodb.GetItemOutput{Item: marshalCampaign(t, testCampaign(true))}, nil
	}

	got, err := newTestCampaignRepo(client).GetDefaultCampaign(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"CAMPAIGN#user-1", "camp-1"}, requestedPKs)
	assert.Equal(t, "camp-1", got.ID)
}

func TestGetDefaultCampaignNotFound(t *testing.T) {
	client := &stubClient{
		getItem: func(_ context.Context, _ *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{}, nil
		},
	}

	_, err := newTestCampaignRepo(client).GetDefaultCampaign(context.Background(), "user-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetCampaignsForUserSkipsDanglingLinks(t *testing.T) {
	link1, err := newUserCampaignItem(entities.UserCampaign{UserID: "user-1", CampaignID: "camp-1", Role: entities.CampaignRoleAdmin}, fixedNow)
	require.NoError(t, err)
	link2, err := newUserCampaignItem(entities.UserCampaign{UserID: "user-1", CampaignID: "camp-gone", Role: entities.CampaignRoleAdmin}, fixedNow)
	require.NoError(t, err)

	av1, err := attributevalue.MarshalMap(link1)
	require.NoError(t, err)
	av2, err := attributevalue.MarshalMap(link2)
	require.NoError(t, err)

	client := &stubClient{
		query: func(_ context.Context, params *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			assert.Nil(t, params.IndexName, "membership links queried on the main table")
			return &awsdynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av1, av2}}, nil
		},
		getItem: func(_ context.Context, params *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			pk := params.Key["pk"].(*types.AttributeValueMemberS).Value
			if pk == "camp-gone" {
				return &awsdynamodb.GetItemOutput{}, nil
			}
			return &awsdynamodb.GetItemOutput{Item: marshalCampaign(t, testCampaign(false))}, nil
		},
	}

	campaigns, err := newTestCampaignRepo(client).GetCampaignsForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "camp-1", campaigns[0].ID)
}
