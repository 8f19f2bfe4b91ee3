package dynamodb

import (
	"context"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// stubClient implements API with per-call function fields. Unset calls return
// empty outputs so tests only wire what they assert on.
type stubClient struct {
	getItem            func(ctx context.Context, params *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error)
	putItem            func(ctx context.Context, params *awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error)
	updateItem         func(ctx context.Context, params *awsdynamodb.UpdateItemInput) (*awsdynamodb.UpdateItemOutput, error)
	deleteItem         func(ctx context.Context, params *awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error)
	query              func(ctx context.Context, params *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error)
	batchWriteItem     func(ctx context.Context, params *awsdynamodb.BatchWriteItemInput) (*awsdynamodb.BatchWriteItemOutput, error)
	transactWriteItems func(ctx context.Context, params *awsdynamodb.TransactWriteItemsInput) (*awsdynamodb.TransactWriteItemsOutput, error)
}

func (s *stubClient) GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	if s.getItem == nil {
		return &awsdynamodb.GetItemOutput{}, nil
	}
	return s.getItem(ctx, params)
}

func (s *stubClient) PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	if s.putItem == nil {
		return &awsdynamodb.PutItemOutput{}, nil
	}
	return s.putItem(ctx, params)
}

func (s *stubClient) UpdateItem(ctx context.Context, params *awsdynamodb.UpdateItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.UpdateItemOutput, error) {
	if s.updateItem == nil {
		return &awsdynamodb.UpdateItemOutput{}, nil
	}
	return s.updateItem(ctx, params)
}

func (s *stubClient) DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	if s.deleteItem == nil {
		return &awsdynamodb.DeleteItemOutput{}, nil
	}
	return s.deleteItem(ctx, params)
}

func (s *stubClient) Query(ctx context.Context, params *awsdynamodb.QueryInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	if s.query == nil {
		return &awsdynamodb.QueryOutput{}, nil
	}
	return s.query(ctx, params)
}

func (s *stubClient) BatchWriteItem(ctx context.Context, params *awsdynamodb.BatchWriteItemInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.BatchWriteItemOutput, error) {
	if s.batchWriteItem == nil {
		return &awsdynamodb.BatchWriteItemOutput{}, nil
	}
	return s.batchWriteItem(ctx, params)
}

func (s *stubClient) TransactWriteItems(ctx context.Context, params *awsdynamodb.TransactWriteItemsInput, _ ...func(*awsdynamodb.Options)) (*awsdynamodb.TransactWriteItemsOutput, error) {
	if s.transactWriteItems == nil {
		return &awsdynamodb.TransactWriteItemsOutput{}, nil
	}
	return s.transactWriteItems(ctx, params)
}

var _ API = (*stubClient)(nil)
