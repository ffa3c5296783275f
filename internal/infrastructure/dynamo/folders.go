package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-cms-api/internal/domain"
)

// FolderRepo provides typed DynamoDB operations for the folders table.
type FolderRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewFolderRepo(client *dynamodb.Client, tableName string) *FolderRepo {
	return &FolderRepo{client: client, tableName: tableName}
}

func (r *FolderRepo) Put(ctx context.Context, f *domain.Folder) error {
	item, err := attributevalue.MarshalMap(f)
	if err != nil {
		return fmt.Errorf("marshal folder: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *FolderRepo) Get(ctx context.Context, folderID string) (*domain.Folder, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("folder_id", folderID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("folder not found: %w", domain.ErrNotFound)
	}
	var f domain.Folder
	if err := attributevalue.UnmarshalMap(out.Item, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FolderRepo) ListByParent(ctx context.Context, parentID string) ([]domain.Folder, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("parent_id-index"),
		KeyConditionExpression:    aws.String("parent_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: parentID}},
	})
	if err != nil {
		return nil, err
	}
	var folders []domain.Folder
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FolderRepo) Scan(ctx context.Context) ([]domain.Folder, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var folders []domain.Folder
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FolderRepo) Update(ctx context.Context, folderID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("folder_id", folderID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *FolderRepo) HardDelete(ctx context.Context, folderID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("folder_id", folderID),
	})
	return err
}
