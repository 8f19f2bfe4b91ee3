package dynamodb

import (
	"context"
	"time"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CampaignRepository persists campaigns, user-campaign membership links, and
// the per-user default-campaign pointer.
type CampaignRepository struct {
	client API
	table  string
	logger *zap.Logger
	now    func() time.Time
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(client API, table string, logger *zap.Logger) *CampaignRepository {
	return &CampaignRepository{
		client: client,
		table:  table,
		logger: logger,
		now:    time.Now,
	}
}

// InsertCampaign writes the campaign, its admin membership link, and (when the
// campaign is marked default) the default-campaign pointer as one atomic
// transaction. An orphaned link without its campaign would corrupt the
// membership model, so this is the one place true atomicity is required.
func (r *CampaignRepository) InsertCampaign(ctx context.Context, userID string, campaign entities.Campaign) (entities.Campaign, error) {
	r.logger.Debug("inserting new campaign",
		zap.String("campaignId", campaign.ID),
		zap.String("userId", userID),
	)

	now := r.now()

	campaignItm, err := newCampaignItem(campaign, now)
	if err != nil {
		return entities.Campaign{}, apperrors.NewValidationError(err.Error())
	}
	linkItm, err := newUserCampaignItem(entities.UserCampaign{
		UserID:     userID,
		CampaignID: campaign.ID,
		Role:       entities.CampaignRoleAdmin,
	}, now)
	if err != nil {
		return entities.Campaign{}, apperrors.NewValidationError(err.Error())
	}

	writes := make([]types.TransactWriteItem, 0, 3)

	if campaign.IsDefault {
		defaultItm, err := newUserDefaultCampaignItem(userID, campaign.ID, now)
		if err != nil {
			return entities.Campaign{}, apperrors.NewValidationError(err.Error())
		}
		put, err := transactPut(r.table, defaultItm)
		if err != nil {
			return entities.Campaign{}, err
		}
		writes = append(writes, put)
	}

	campaignPut, err := transactPut(r.table, campaignItm)
	if err != nil {
		return entities.Campaign{}, err
	}
	linkPut, err := transactPut(r.table, linkItm)
	if err != nil {
		return entities.Campaign{}, err
	}
	writes = append(writes, campaignPut, linkPut)

	if _, err := r.client.TransactWriteItems(ctx, &awsdynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	}); err != nil {
		return entities.Campaign{}, apperrors.NewDatabaseError("TransactWriteItems", err)
	}

	return r.GetCampaign(ctx, campaign.ID)
}

// GetCampaign retrieves a campaign by its unique identifier.
func (r *CampaignRepository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	r.logger.Debug("getting campaign", zap.String("campaignId", campaignID))

	key, err := KeyFor(EntityCampaign, campaignID)
	if err != nil {
		return entities.Campaign{}, apperrors.NewValidationError(err.Error())
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	})
	if err != nil {
		return entities.Campaign{}, apperrors.NewDatabaseError("GetItem", err)
	}
	if out.Item == nil {
		return entities.Campaign{}, apperrors.NewNotFoundError("campaign")
	}

	var item campaignItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return entities.Campaign{}, apperrors.NewInternalError("failed to unmarshal campaign").WithCause(err)
	}
	if item.ID == "" {
		return entities.Campaign{}, apperrors.NewNotFoundError("campaign")
	}

	return item.toEntity(), nil
}

// GetDefaultCampaign resolves the user's default-campaign pointer and then
// loads the campaign it points at.
func (r *CampaignRepository) GetDefaultCampaign(ctx context.Context, userID string) (entities.Campaign, error) {
	r.logger.Debug("getting default campaign for user", zap.String("userId", userID))

	key, err := KeyFor(EntityUserDefaultCampaign, userID)
	if err != nil {
		return entities.Campaign{}, apperrors.NewValidationError(err.Error())
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	})
	if err != nil {
		return entities.Campaign{}, apperrors.NewDatabaseError("GetItem", err)
	}
	if out.Item == nil {
		return entities.Campaign{}, apperrors.NewNotFoundError("default campaign")
	}

	var pointer userDefaultCampaignItem
	if err := attributevalue.UnmarshalMap(out.Item, &pointer); err != nil {
		return entities.Campaign{}, apperrors.NewInternalError("failed to unmarshal default campaign pointer").WithCause(err)
	}
	if pointer.CampaignID == "" {
		return entities.Campaign{}, apperrors.NewNotFoundError("default campaign")
	}

	return r.GetCampaign(ctx, pointer.CampaignID)
}

// GetCampaignsForUser queries the user's membership links by partition key and
// resolves each linked campaign with a point get.
func (r *CampaignRepository) GetCampaignsForUser(ctx context.Context, userID string) ([]entities.Campaign, error) {
	r.logger.Debug("fetching campaigns for user", zap.String("userId", userID))

	keyCond := expression.Key("pk").Equal(expression.Value(userID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query expression").WithCause(err)
	}

	out, err := r.client.Query(ctx, &awsdynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("Query", err)
	}

	campaigns := make([]entities.Campaign, 0, len(out.Items))
	for _, raw := range out.Items {
		var link userCampaignItem
		if err := attributevalue.UnmarshalMap(raw, &link); err != nil {
			r.logger.Warn("failed to unmarshal user campaign link", zap.Error(err))
			continue
		}

		campaign, err := r.GetCampaign(ctx, link.CampaignID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}

func attributeKey(key Key) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: key.PK},
		"sk": &types.AttributeValueMemberS{Value: key.SK},
	}
}

func transactPut(table string, item interface{}) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, apperrors.NewInternalError("failed to marshal transaction item").WithCause(err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(table),
			Item:      av,
		},
	}, nil
}
