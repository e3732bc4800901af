package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"jamaah_server/utils"
)

// DynamoKV implements KVStore on a single DynamoDB table with a string
// partition key "k" and the JSON value in "v". Prefix reads scan with a
// begins_with filter, which is what passes for a table query here.
type DynamoKV struct {
	Client *dynamodb.Client
	Table  string
}

type kvItem struct {
	K string `dynamodbav:"k"`
	V string `dynamodbav:"v"`
}

// InitializeDynamoDBClient initializes the DynamoDB client.
func InitializeDynamoDBClient(region string) *dynamodb.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

func (s *DynamoKV) key(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"k": &types.AttributeValueMemberS{Value: key},
	}
}

func (s *DynamoKV) Get(ctx context.Context, key string) ([]byte, error) {
	output, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.Table,
		Key:       s.key(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", s.Table, err)
	}
	if output.Item == nil {
		return nil, fmt.Errorf("key %q: %w", key, utils.ErrNotFound)
	}

	var item kvItem
	if err := attributevalue.UnmarshalMap(output.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return []byte(item.V), nil
}

func (s *DynamoKV) Set(ctx context.Context, key string, value []byte) error {
	marshaled, err := attributevalue.MarshalMap(kvItem{K: key, V: string(value)})
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.Table,
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to put item in table '%s': %w", s.Table, err)
	}
	return nil
}

func (s *DynamoKV) Delete(ctx context.Context, key string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.Table,
		Key:       s.key(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", s.Table, err)
	}
	return nil
}

func (s *DynamoKV) GetByPrefix(ctx context.Context, prefix string) (map[string][]byte, error) {
	out := make(map[string][]byte)

	input := &dynamodb.ScanInput{
		TableName:        &s.Table,
		FilterExpression: aws.String("begins_with(#k, :p)"),
		ExpressionAttributeNames: map[string]string{
			"#k": "k",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p": &types.AttributeValueMemberS{Value: prefix},
		},
	}

	for {
		output, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table '%s': %w", s.Table, err)
		}

		var items []kvItem
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scan result: %w", err)
		}
		for _, item := range items {
			// Scan filters after the fact; keep the prefix check local too.
			if strings.HasPrefix(item.K, prefix) {
				out[item.K] = []byte(item.V)
			}
		}

		if output.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}

	return out, nil
}
