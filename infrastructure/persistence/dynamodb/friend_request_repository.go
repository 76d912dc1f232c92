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

// FriendRequestRepository stores one directed edge per friend request.
// The base table is keyed by sender so outgoing requests are a single
// query; GSI1 mirrors the edge under the receiver for incoming requests.
// Mutual friendship is the intersection of the two directions and is
// computed by the relationship engine, not stored.
type FriendRequestRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewFriendRequestRepository creates a new FriendRequestRepository.
func NewFriendRequestRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.FriendRequestRepository {
	return &FriendRequestRepository{client: client, table: table, logger: logger}
}

type friendRequestItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	SenderID   string `dynamodbav:"SenderID"`
	ReceiverID string `dynamodbav:"ReceiverID"`
}

// Put writes the directed edge, rejecting duplicates with a conflict.
func (r *FriendRequestRepository) Put(ctx context.Context, senderID, receiverID string) error {
	av, err := attributevalue.MarshalMap(friendRequestItem{
		PK:         userPK(senderID),
		SK:         requestSK(receiverID),
		GSI1PK:     userPK(receiverID),
		GSI1SK:     requestSK(senderID),
		EntityType: "FRIEND_REQUEST",
		SenderID:   senderID,
		ReceiverID: receiverID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal friend request: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("friend request already exists")
		}
		r.logger.Error("Failed to put friend request",
			zap.Error(err),
			zap.String("senderID", senderID),
			zap.String("receiverID", receiverID),
		)
		return fmt.Errorf("failed to put friend request: %w", err)
	}
	return nil
}

// Delete removes the directed edge. Deleting an absent edge is a no-op.
func (r *FriendRequestRepository) Delete(ctx context.Context, senderID, receiverID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(senderID)},
			"SK": &types.AttributeValueMemberS{Value: requestSK(receiverID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	return nil
}

// Exists reports whether sender has an outstanding request to receiver.
func (r *FriendRequestRepository) Exists(ctx context.Context, senderID, receiverID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(senderID)},
			"SK": &types.AttributeValueMemberS{Value: requestSK(receiverID)},
		},
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check friend request: %w", err)
	}
	return out.Item != nil, nil
}

// Receivers lists the users this sender has outstanding requests to.
func (r *FriendRequestRepository) Receivers(ctx context.Context, senderID string) ([]string, error) {
	return r.queryEdges(ctx, senderID, "", "ReceiverID")
}

// Senders lists the users with outstanding requests to this receiver.
func (r *FriendRequestRepository) Senders(ctx context.Context, receiverID string) ([]string, error) {
	return r.queryEdges(ctx, receiverID, r.table.GSI1, "SenderID")
}

func (r *FriendRequestRepository) queryEdges(ctx context.Context, userID, indexName, idAttr string) ([]string, error) {
	pkName := "PK"
	skName := "SK"
	if indexName != "" {
		pkName = "GSI1PK"
		skName = "GSI1SK"
	}

	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(pkName).Equal(expression.Value(userPK(userID))).
			And(expression.Key(skName).BeginsWith("FRQ#"))).
		WithProjection(expression.NamesList(expression.Name(idAttr))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build friend request query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if indexName != "" {
		input.IndexName = aws.String(indexName)
	}

	ids := []string{}
	for {
		out, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query friend requests: %w", err)
		}

		for _, item := range out.Items {
			if v, ok := item[idAttr].(*types.AttributeValueMemberS); ok {
				ids = append(ids, v.Value)
			}
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return ids, nil
}
