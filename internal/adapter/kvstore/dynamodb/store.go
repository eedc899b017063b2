// Package dynamodb is a kvstore backend on a DynamoDB table with a string
// partition key named PK.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/heartmarshall/postcards-home/internal/adapter/kvstore"
	"github.com/heartmarshall/postcards-home/internal/config"
	"github.com/heartmarshall/postcards-home/internal/domain"
)

// api is the part of *dynamodb.Client the store calls.
type api interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type item struct {
	PK        string `dynamodbav:"PK"`
	Value     string `dynamodbav:"Value"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

// Store reads and writes whole items keyed by PK.
type Store struct {
	client api
	table  string
	now    func() time.Time
}

// New loads the default AWS configuration for cfg.Region and returns a
// Store on cfg.Table. A non-empty cfg.Endpoint overrides the service
// endpoint (DynamoDB Local, LocalStack).
func New(ctx context.Context, cfg config.DynamoDBStorageConfig) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewWithClient(client, cfg.Table), nil
}

// NewWithClient returns a Store using an existing client.
func NewWithClient(client api, table string) *Store {
	return &Store{client: client, table: table, now: time.Now}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            map[string]types.AttributeValue{"PK": &types.AttributeValueMemberS{Value: key}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, mapError(err, key)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("key %s: unmarshal item: %w", key, err)
	}
	return []byte(it.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	av, err := attributevalue.MarshalMap(item{
		PK:        key,
		Value:     string(value),
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("key %s: marshal item: %w", key, err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return mapError(err, key)
	}
	return nil
}

// Ping describes the table.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	if err != nil {
		return fmt.Errorf("describe table %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

// mapError recognises the 400 KB item limit and throughput throttling as
// quota failures.
func mapError(err error, key string) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "ValidationException":
			if strings.Contains(strings.ToLower(ae.ErrorMessage()), "size") {
				return fmt.Errorf("key %s: %w: %w", key, kvstore.ErrQuotaExceeded, err)
			}
		case "ProvisionedThroughputExceededException", "RequestLimitExceeded":
			return fmt.Errorf("key %s: %w: %w", key, kvstore.ErrQuotaExceeded, err)
		case "ResourceNotFoundException":
			return fmt.Errorf("key %s: table missing: %w", key, err)
		}
	}
	return fmt.Errorf("key %s: %w", key, err)
}
