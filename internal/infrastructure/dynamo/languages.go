package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-cms-api/internal/domain"
)

// LanguageRepo provides typed DynamoDB operations for the languages table.
type LanguageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLanguageRepo(client *dynamodb.Client, tableName string) *LanguageRepo {
	return &LanguageRepo{client: client, tableName: tableName}
}

func (r *LanguageRepo) Put(ctx context.Context, l *domain.Language) error {
	item, err := attributevalue.MarshalMap(l)
	if err != nil {
		return fmt.Errorf("marshal language: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LanguageRepo) Get(ctx context.Context, languageID string) (*domain.Language, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("language_id", languageID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("language not found: %w", domain.ErrNotFound)
	}
	var l domain.Language
	if err := attributevalue.UnmarshalMap(out.Item, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LanguageRepo) Scan(ctx context.Context) ([]domain.Language, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var langs []domain.Language
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (r *LanguageRepo) Update(ctx context.Context, languageID string, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("language_id", languageID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *LanguageRepo) HardDelete(ctx context.Context, languageID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("language_id", languageID),
	})
	return err
}
