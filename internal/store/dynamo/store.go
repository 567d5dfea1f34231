package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

// DefaultLookbackDays bounds how far back Recent reads.
const DefaultLookbackDays = 90

// api is the subset of the DynamoDB client the store uses.
type api interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store keeps notices in a DynamoDB table keyed by source_id and link.
type Store struct {
	client       api
	table        string
	clock        notice.Clock
	lookbackDays int
}

// item is the table row shape.
type item struct {
	SourceID  string `dynamodbav:"source_id"`
	Link      string `dynamodbav:"link"`
	Title     string `dynamodbav:"title"`
	Published string `dynamodbav:"published"`
}

// New builds a Store over the given client and table.
func New(client api, table string, clock notice.Clock) *Store {
	return &Store{
		client:       client,
		table:        table,
		clock:        clock,
		lookbackDays: DefaultLookbackDays,
	}
}

// WithLookback overrides the Recent window. Non-positive values keep the
// default.
func (s *Store) WithLookback(days int) *Store {
	if days > 0 {
		s.lookbackDays = days
	}
	return s
}

// Recent returns the titles and links stored for sourceID within the
// lookback window.
func (s *Store) Recent(ctx context.Context, sourceID string) ([]notice.Known, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -s.lookbackDays).Format(time.RFC3339)

	var (
		known []notice.Known
		start map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.table),
			KeyConditionExpression: aws.String("source_id = :sid"),
			FilterExpression:       aws.String("published >= :cutoff"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sid":    &types.AttributeValueMemberS{Value: sourceID},
				":cutoff": &types.AttributeValueMemberS{Value: cutoff},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, fmt.Errorf("query notices for %s: %w", sourceID, err)
		}

		var items []item
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("unmarshal notices for %s: %w", sourceID, err)
		}
		for _, it := range items {
			known = append(known, notice.Known{Title: it.Title, Link: it.Link})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	return known, nil
}

// SaveAll writes each notice as its own item. The link is part of the key,
// so rewriting an existing notice is a no-op overwrite.
func (s *Store) SaveAll(ctx context.Context, sourceID string, notices []notice.Notice) (int, error) {
	saved := 0
	for _, n := range notices {
		row := item{
			SourceID:  sourceID,
			Link:      n.Link,
			Title:     n.Title,
			Published: n.Published.Format(time.RFC3339),
		}
		av, err := attributevalue.MarshalMap(row)
		if err != nil {
			return saved, fmt.Errorf("marshal notice %q: %w", n.Title, err)
		}
		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.table),
			Item:      av,
		})
		if err != nil {
			return saved, fmt.Errorf("put notice %q: %w", n.Title, err)
		}
		saved++
	}
	return saved, nil
}
