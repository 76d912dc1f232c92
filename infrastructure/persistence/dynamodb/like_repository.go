package dynamodb

import (
	"context"
	"fmt"

	"fbclone-backend/application/ports"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// LikeRepository stores one item per (liker, content) edge under the
// content's partition, so counting a post's likes is a single-partition
// query and double likes are rejected by a condition expression.
type LikeRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewLikeRepository creates a new LikeRepository.
func NewLikeRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.LikeRepository {
	return &LikeRepository{client: client, table: table, logger: logger}
}

type likeItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	LikerID    string `dynamodbav:"LikerID"`
	ContentID  string `dynamodbav:"ContentID"`
}

// Put writes the like edge, rejecting duplicates with a conflict.
func (r *LikeRepository) Put(ctx context.Context, likerID, contentID string) error {
	av, err := attributevalue.MarshalMap(likeItem{
		PK:         contentPK(contentID),
		SK:         likerSK(likerID),
		EntityType: "LIKE",
		LikerID:    likerID,
		ContentID:  contentID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal like: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("like edge already exists")
		}
		r.logger.Error("Failed to put like",
			zap.Error(err),
			zap.String("contentID", contentID),
			zap.String("likerID", likerID),
		)
		return fmt.Errorf("failed to put like: %w", err)
	}
	return nil
}

// Delete removes the like edge. Deleting an absent edge is a no-op.
func (r *LikeRepository) Delete(ctx context.Context, likerID, contentID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: contentPK(contentID)},
			"SK": &types.AttributeValueMemberS{Value: likerSK(likerID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

// Exists reports whether the given user has liked the given content.
func (r *LikeRepository) Exists(ctx context.Context, likerID, contentID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: contentPK(contentID)},
			"SK": &types.AttributeValueMemberS{Value: likerSK(likerID)},
		},
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return out.Item != nil, nil
}

// Count returns the number of like edges under a piece of content.
func (r *LikeRepository) Count(ctx context.Context, contentID string) (int, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("PK").Equal(expression.Value(contentPK(contentID))).
			And(expression.Key("SK").BeginsWith("LIKER#"))).
		Build()
	if err != nil {
		return 0, fmt.Errorf("failed to build like count query: %w", err)
	}

	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table.Name),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			Select:                    types.SelectCount,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to count likes: %w", err)
		}
		total += int(out.Count)

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return total, nil
}
