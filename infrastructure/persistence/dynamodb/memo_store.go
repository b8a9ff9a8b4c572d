package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
	"memoboard/pkg/utils"
)

const (
	entityMemo     = "MEMO"
	entityCategory = "CATEGORY"
	metadataSK     = "METADATA"

	// DynamoDB rejects items above 400KB; leave room for attribute names
	maxItemBytes = 390 * 1024
)

// API is the subset of the DynamoDB client used by the store
type API interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// MemoStore keeps memos and categories in a single DynamoDB table
type MemoStore struct {
	client    API
	tableName string
	logger    *zap.Logger
	now       func() time.Time
}

// memoItem represents the DynamoDB item structure for a memo
type memoItem struct {
	PK         string   `dynamodbav:"PK"`
	SK         string   `dynamodbav:"SK"`
	EntityType string   `dynamodbav:"EntityType"`
	MemoID     string   `dynamodbav:"MemoID"`
	Title      string   `dynamodbav:"Title"`
	Content    string   `dynamodbav:"Content"`
	Category   string   `dynamodbav:"Category"`
	Image      string   `dynamodbav:"Image,omitempty"`
	Tags       []string `dynamodbav:"Tags"`
	CreatedAt  string   `dynamodbav:"CreatedAt"`
}

// categoryItem represents the DynamoDB item structure for a category
type categoryItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	CategoryID string `dynamodbav:"CategoryID"`
	Name       string `dynamodbav:"Name"`
	Color      string `dynamodbav:"Color"`
}

// NewMemoStore creates a new DynamoDB backed store
func NewMemoStore(client API, tableName string, logger *zap.Logger) *MemoStore {
	return &MemoStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the clock used to stamp new memos
func (s *MemoStore) SetClock(now func() time.Time) {
	s.now = now
}

// List scans every memo item in the table
func (s *MemoStore) List(ctx context.Context) ([]entities.Memo, error) {
	var items []memoItem
	if err := s.scanEntities(ctx, entityMemo, &items); err != nil {
		return nil, pkgerrors.NewTransportError("list", err)
	}

	memos := make([]entities.Memo, 0, len(items))
	for _, item := range items {
		memo, err := item.toMemo()
		if err != nil {
			s.logger.Warn("Skipping malformed memo item",
				zap.String("pk", item.PK),
				zap.Error(err),
			)
			continue
		}
		memos = append(memos, memo)
	}

	s.logger.Debug("Scanned memos", zap.Int("count", len(memos)))
	return memos, nil
}

// Create stores a new memo. The put is conditional so an id is never reused.
func (s *MemoStore) Create(ctx context.Context, draft ports.MemoDraft) (entities.Memo, error) {
	// The draft was validated against the active domain config upstream.
	memo, err := entities.ReconstructMemo(
		valueobjects.NewMemoID(),
		draft.Content,
		draft.Category,
		draft.Image,
		draft.Tags,
		s.now(),
	)
	if err != nil {
		return entities.Memo{}, err
	}

	item := newMemoItem(memo)
	if size := item.approximateSize(); size > maxItemBytes {
		return entities.Memo{}, pkgerrors.NewValidationError(
			fmt.Sprintf("memo is too large to store (%d bytes); attach a smaller image", size))
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return entities.Memo{}, pkgerrors.NewInternalError("failed to marshal memo").WithCause(err)
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeNotExists()).
		Build()
	if err != nil {
		return entities.Memo{}, pkgerrors.NewInternalError("failed to build condition").WithCause(err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.tableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		s.logger.Error("Failed to put memo",
			zap.String("memoID", memo.ID().String()),
			zap.Error(err),
		)
		return entities.Memo{}, pkgerrors.NewTransportError("create", err)
	}

	return memo, nil
}

// Delete removes a memo item; a missing item yields a NotFound error
func (s *MemoStore) Delete(ctx context.Context, id valueobjects.MemoID) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name("PK").AttributeExists()).
		Build()
	if err != nil {
		return pkgerrors.NewInternalError("failed to build condition").WithCause(err)
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: memoPK(id)},
			"SK": &types.AttributeValueMemberS{Value: metadataSK},
		},
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError("memo")
		}
		return pkgerrors.NewTransportError("delete", err)
	}
	return nil
}

// ListCategories scans the category items in the table
func (s *MemoStore) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var items []categoryItem
	if err := s.scanEntities(ctx, entityCategory, &items); err != nil {
		return nil, pkgerrors.NewTransportError("categories", err)
	}

	categories := make([]entities.Category, 0, len(items))
	for _, item := range items {
		categories = append(categories, entities.Category{
			ID:    item.CategoryID,
			Name:  item.Name,
			Color: item.Color,
		})
	}
	return categories, nil
}

// scanEntities pages through every item of one entity type
func (s *MemoStore) scanEntities(ctx context.Context, entityType string, out interface{}) error {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("EntityType").Equal(expression.Value(entityType))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build filter: %w", err)
	}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var all []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		all = append(all, page.Items...)
	}

	return attributevalue.UnmarshalListOfMaps(all, out)
}

func memoPK(id valueobjects.MemoID) string {
	return "MEMO#" + id.String()
}

func newMemoItem(m entities.Memo) memoItem {
	return memoItem{
		PK:         memoPK(m.ID()),
		SK:         metadataSK,
		EntityType: entityMemo,
		MemoID:     m.ID().String(),
		Title:      m.Title(),
		Content:    m.Content(),
		Category:   m.Category(),
		Image:      m.Image().DataURI(),
		Tags:       m.Tags(),
		CreatedAt:  utils.FormatTimestamp(m.CreatedAt()),
	}
}

func (i memoItem) approximateSize() int {
	size := len(i.PK) + len(i.SK) + len(i.EntityType) + len(i.MemoID) +
		len(i.Title) + len(i.Content) + len(i.Category) + len(i.Image) + len(i.CreatedAt)
	for _, tag := range i.Tags {
		size += len(tag)
	}
	return size
}

func (i memoItem) toMemo() (entities.Memo, error) {
	id, err := valueobjects.MemoIDFromString(i.MemoID)
	if err != nil {
		return entities.Memo{}, err
	}
	content, err := valueobjects.RestoreMemoContent(i.Title, i.Content)
	if err != nil {
		return entities.Memo{}, err
	}
	image, err := valueobjects.ImageFromDataURI(i.Image)
	if err != nil {
		return entities.Memo{}, err
	}
	createdAt, err := utils.ParseTimestamp(i.CreatedAt)
	if err != nil {
		return entities.Memo{}, err
	}
	return entities.ReconstructMemo(id, content, i.Category, image, i.Tags, createdAt)
}
