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

// SectionRepo provides typed DynamoDB operations for the sections table.
type SectionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSectionRepo(client *dynamodb.Client, tableName string) *SectionRepo {
	return &SectionRepo{client: client, tableName: tableName}
}

func (r *SectionRepo) Put(ctx context.Context, s *domain.Section) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal section: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SectionRepo) Get(ctx context.Context, sectionID string) (*domain.Section, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("section_id", sectionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("section not found: %w", domain.ErrNotFound)
	}
	var s domain.Section
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepo) ListByPage(ctx context.Context, pageID string) ([]domain.Section, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("page_id-index"),
		KeyConditionExpression:    aws.String("page_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: pageID}},
	})
	if err != nil {
		return nil, err
	}
	var sections []domain.Section
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *SectionRepo) Scan(ctx context.Context) ([]domain.Section, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var sections []domain.Section
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *SectionRepo) Update(ctx context.Context, sectionID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("section_id", sectionID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SectionRepo) HardDelete(ctx context.Context, sectionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("section_id", sectionID),
	})
	return err
}
