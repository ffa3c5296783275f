package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-cms-api/internal/domain"
)

// PermissionRepo provides typed DynamoDB operations for the permissions table.
type PermissionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPermissionRepo(client *dynamodb.Client, tableName string) *PermissionRepo {
	return &PermissionRepo{client: client, tableName: tableName}
}

func (r *PermissionRepo) Put(ctx context.Context, p *domain.Permission) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal permission: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PermissionRepo) Get(ctx context.Context, permissionID string) (*domain.Permission, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("permission_id", permissionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("permission not found: %w", domain.ErrNotFound)
	}
	var p domain.Permission
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepo) Scan(ctx context.Context) ([]domain.Permission, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var perms []domain.Permission
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *PermissionRepo) Update(ctx context.Context, permissionID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("permission_id", permissionID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *PermissionRepo) HardDelete(ctx context.Context, permissionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("permission_id", permissionID),
	})
	return err
}
