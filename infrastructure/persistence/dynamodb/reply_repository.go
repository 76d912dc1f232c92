package dynamodb

import (
	"context"
	"fmt"

	"fbclone-backend/application/ports"
	"fbclone-backend/domain/social"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ReplyRepository stores replies keyed by reply ID, with an author
// index and a thread index so both a profile page and a post's thread
// can be listed without scans.
type ReplyRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewReplyRepository creates a new ReplyRepository.
func NewReplyRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.ReplyRepository {
	return &ReplyRepository{client: client, table: table, logger: logger}
}

// replyItem represents the DynamoDB item structure for a reply.
type replyItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	GSI2PK     string `dynamodbav:"GSI2PK"`
	GSI2SK     string `dynamodbav:"GSI2SK"`
	EntityType string `dynamodbav:"EntityType"`
	ReplyID    string `dynamodbav:"ReplyID"`
	PosterID   string `dynamodbav:"PosterID"`
	ReplyTo    string `dynamodbav:"ReplyTo"`
	Timestamp  int64  `dynamodbav:"Timestamp"`
	Message    string `dynamodbav:"Message"`
}

// Create persists a reply.
func (r *ReplyRepository) Create(ctx context.Context, reply *social.Reply) error {
	item := replyItem{
		PK:         replyPK(reply.ID),
		SK:         skReply,
		GSI1PK:     userPK(reply.PosterID),
		GSI1SK:     authorSortKey(skReply, reply.Timestamp, reply.ID),
		GSI2PK:     postPK(reply.ReplyTo),
		GSI2SK:     authorSortKey(skReply, reply.Timestamp, reply.ID),
		EntityType: "REPLY",
		ReplyID:    reply.ID,
		PosterID:   reply.PosterID,
		ReplyTo:    reply.ReplyTo,
		Timestamp:  reply.Timestamp,
		Message:    reply.Message,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal reply: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to create reply",
			zap.Error(err),
			zap.String("replyID", reply.ID),
		)
		return fmt.Errorf("failed to create reply: %w", err)
	}

	r.logger.Info("Created reply",
		zap.String("replyID", reply.ID),
		zap.String("replyTo", reply.ReplyTo),
	)
	return nil
}

// GetByID fetches a reply by ID. Missing replies return (nil, nil).
func (r *ReplyRepository) GetByID(ctx context.Context, id string) (*social.Reply, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: replyPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skReply},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var it replyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reply: %w", err)
	}
	return &social.Reply{
		ID:        it.ReplyID,
		Timestamp: it.Timestamp,
		PosterID:  it.PosterID,
		Message:   it.Message,
		ReplyTo:   it.ReplyTo,
	}, nil
}

// Exists reports whether a reply item is present.
func (r *ReplyRepository) Exists(ctx context.Context, id string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: replyPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skReply},
		},
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check reply: %w", err)
	}
	return out.Item != nil, nil
}

// IDsByAuthor lists a user's reply IDs in chronological order.
func (r *ReplyRepository) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	return queryIDsByAuthor(ctx, r.client, r.table, authorID, skReply, "ReplyID")
}

// IDsByPost lists the IDs of replies under a post in thread order.
func (r *ReplyRepository) IDsByPost(ctx context.Context, postID string) ([]string, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI2PK").Equal(expression.Value(postPK(postID)))).
		WithProjection(expression.NamesList(expression.Name("ReplyID"))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build thread query: %w", err)
	}

	ids := []string{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table.Name),
			IndexName:                 aws.String(r.table.GSI2),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query thread: %w", err)
		}

		for _, item := range out.Items {
			if v, ok := item["ReplyID"].(*types.AttributeValueMemberS); ok {
				ids = append(ids, v.Value)
			}
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return ids, nil
}
