package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memoboard/application/ports"
	"memoboard/domain/core/entities"
	"memoboard/domain/core/valueobjects"
	pkgerrors "memoboard/pkg/errors"
)

// fakeTable keeps items by PK and evaluates only the conditions the store uses
type fakeTable struct {
	items    map[string]map[string]types.AttributeValue
	order    []string
	pageSize int
	scanErr  error
	putErr   error
	scans    int
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]types.AttributeValue{}, pageSize: 1}
}

func pkOf(item map[string]types.AttributeValue) string {
	return item["PK"].(*types.AttributeValueMemberS).Value
}

func (f *fakeTable) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	pk := pkOf(in.Item)
	if _, exists := f.items[pk]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	if _, exists := f.items[pk]; !exists {
		f.order = append(f.order, pk)
	}
	f.items[pk] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	pk := pkOf(in.Key)
	if _, exists := f.items[pk]; !exists {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	delete(f.items, pk)
	for i, k := range f.order {
		if k == pk {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan pages through the table pageSize items at a time and applies the
// EntityType filter using the single expression value placeholder.
func (f *fakeTable) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans++
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	var want string
	for _, v := range in.ExpressionAttributeValues {
		want = v.(*types.AttributeValueMemberS).Value
	}

	start := 0
	if in.ExclusiveStartKey != nil {
		last := pkOf(in.ExclusiveStartKey)
		for i, k := range f.order {
			if k == last {
				start = i + 1
			}
		}
	}
	end := start + f.pageSize
	if end > len(f.order) {
		end = len(f.order)
	}

	out := &dynamodb.ScanOutput{}
	for _, pk := range f.order[start:end] {
		item := f.items[pk]
		if item["EntityType"].(*types.AttributeValueMemberS).Value == want {
			out.Items = append(out.Items, item)
		}
	}
	if end < len(f.order) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: f.order[end-1]},
		}
	}
	return out, nil
}

func newDraft(t *testing.T, title string, image valueobjects.Image) ports.MemoDraft {
	t.Helper()
	content, err := valueobjects.NewMemoContent(title, "content")
	require.NoError(t, err)
	return ports.MemoDraft{Content: content, Category: "study", Image: image, Tags: []string{"a", "a"}}
}

// putCategory writes a catalog item the way an operator provisions one
func putCategory(t *testing.T, table *fakeTable, item categoryItem) {
	t.Helper()
	av, err := attributevalue.MarshalMap(item)
	require.NoError(t, err)
	_, err = table.PutItem(context.Background(), &dynamodb.PutItemInput{TableName: aws.String("memoboard"), Item: av})
	require.NoError(t, err)
}

func TestMemoStore_CreateListDelete(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable()
	store := NewMemoStore(table, "memoboard", zap.NewNop())
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return fixed })

	first, err := store.Create(ctx, newDraft(t, "first", valueobjects.Image{}))
	require.NoError(t, err)
	_, err = store.Create(ctx, newDraft(t, "second", valueobjects.Image{}))
	require.NoError(t, err)
	putCategory(t, table, categoryItem{
		PK: "CATEGORY#study", SK: metadataSK, EntityType: entityCategory,
		CategoryID: "study", Name: "Study", Color: "#f59e0b",
	})

	memos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, memos, 2, "category items are filtered out")
	assert.Equal(t, []string{"a", "a"}, memos[0].Tags())
	assert.True(t, fixed.Equal(memos[0].CreatedAt()))
	assert.GreaterOrEqual(t, table.scans, 3, "every page is read")

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Category{{ID: "study", Name: "Study", Color: "#f59e0b"}}, categories)

	require.NoError(t, store.Delete(ctx, first.ID()))
	assert.True(t, pkgerrors.IsNotFound(store.Delete(ctx, first.ID())))
}

func TestMemoStore_CreateAcceptsConfiguredTagLimit(t *testing.T) {
	content, err := valueobjects.NewMemoContent("tagged", "content")
	require.NoError(t, err)
	tags := make([]string, 25)
	for i := range tags {
		tags[i] = fmt.Sprintf("t%d", i)
	}

	memo, err := NewMemoStore(newFakeTable(), "memoboard", zap.NewNop()).
		Create(context.Background(), ports.MemoDraft{Content: content, Category: "study", Tags: tags})

	require.NoError(t, err)
	assert.Len(t, memo.Tags(), 25)
}

func TestMemoStore_ItemLayout(t *testing.T) {
	table := newFakeTable()
	store := NewMemoStore(table, "memoboard", zap.NewNop())

	memo, err := store.Create(context.Background(), newDraft(t, "layout", valueobjects.Image{}))
	require.NoError(t, err)

	var item memoItem
	require.NoError(t, attributevalue.UnmarshalMap(table.items["MEMO#"+memo.ID().String()], &item))
	assert.Equal(t, "METADATA", item.SK)
	assert.Equal(t, "MEMO", item.EntityType)
	assert.Empty(t, item.Image)
}

func TestMemoStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("scan failure", func(t *testing.T) {
		table := newFakeTable()
		table.scanErr = errors.New("throttled")
		_, err := NewMemoStore(table, "memoboard", zap.NewNop()).List(ctx)
		assert.True(t, pkgerrors.IsTransport(err))
	})

	t.Run("put failure", func(t *testing.T) {
		table := newFakeTable()
		table.putErr = errors.New("throttled")
		_, err := NewMemoStore(table, "memoboard", zap.NewNop()).Create(ctx, newDraft(t, "x", valueobjects.Image{}))
		assert.True(t, pkgerrors.IsTransport(err))
	})

	t.Run("oversized image", func(t *testing.T) {
		big, err := valueobjects.NewImage("image/png", []byte(strings.Repeat("x", 400*1024)))
		require.NoError(t, err)
		table := newFakeTable()
		_, err = NewMemoStore(table, "memoboard", zap.NewNop()).Create(ctx, newDraft(t, "x", big))
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Empty(t, table.items)
	})
}
