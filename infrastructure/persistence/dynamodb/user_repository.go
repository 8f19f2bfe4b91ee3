package dynamodb

import (
	"context"
	"time"

	"jobtrack/domain/entities"
	apperrors "jobtrack/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// UserRepository persists users in the shared table, keyed by email.
type UserRepository struct {
	client API
	table  string
	logger *zap.Logger
	now    func() time.Time
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client API, table string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client: client,
		table:  table,
		logger: logger,
		now:    time.Now,
	}
}

// InsertUser writes a user item and returns the freshly re-read entity rather
// than trusting the write response.
func (r *UserRepository) InsertUser(ctx context.Context, user entities.User) (entities.User, error) {
	r.logger.Debug("inserting user", zap.String("userId", user.ID))

	item, err := newUserItem(user, r.now())
	if err != nil {
		return entities.User{}, apperrors.NewValidationError(err.Error())
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.User{}, apperrors.NewInternalError("failed to marshal user").WithCause(err)
	}

	if _, err := r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	}); err != nil {
		return entities.User{}, apperrors.NewDatabaseError("PutItem", err)
	}

	return r.GetUserByEmail(ctx, user.Email)
}

// GetUserByEmail retrieves a user by email. Missing items and items without an
// id attribute both count as not found.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	r.logger.Debug("getting user by email")

	key, err := KeyFor(EntityUser, email)
	if err != nil {
		return entities.User{}, apperrors.NewValidationError(err.Error())
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       attributeKey(key),
	})
	if err != nil {
		return entities.User{}, apperrors.NewDatabaseError("GetItem", err)
	}
	if out.Item == nil {
		return entities.User{}, apperrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return entities.User{}, apperrors.NewInternalError("failed to unmarshal user").WithCause(err)
	}
	if item.ID == "" {
		return entities.User{}, apperrors.NewNotFoundError("user")
	}

	return item.toEntity(), nil
}
