package dynamodb

import (
	"context"
	"fmt"
	"time"

	"fbclone-backend/application/ports"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository stores user profiles alongside a claim item per
// handle, so handle uniqueness survives concurrent signups.
type UserRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{client: client, table: table, logger: logger}
}

// userItem represents the DynamoDB item structure for a user profile.
type userItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	EntityType   string `dynamodbav:"EntityType"`
	UserID       string `dynamodbav:"UserID"`
	Username     string `dynamodbav:"Username"`
	Name         string `dynamodbav:"Name"`
	AvatarBucket string `dynamodbav:"AvatarBucket,omitempty"`
	AvatarRegion string `dynamodbav:"AvatarRegion,omitempty"`
	AvatarUUID   string `dynamodbav:"AvatarUUID,omitempty"`
	AvatarExt    string `dynamodbav:"AvatarExt,omitempty"`
	PasswordHash []byte `dynamodbav:"PasswordHash"`
	PasswordSalt []byte `dynamodbav:"PasswordSalt"`
	FriendOnly   bool   `dynamodbav:"FriendOnly"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

// handleClaimItem reserves a handle for exactly one user.
type handleClaimItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	UserID     string `dynamodbav:"UserID"`
}

func toUserItem(user *social.User) userItem {
	return userItem{
		PK:           userPK(user.ID),
		SK:           skProfile,
		GSI1PK:       handlePK(user.Username),
		GSI1SK:       skProfile,
		EntityType:   "USER",
		UserID:       user.ID,
		Username:     user.Username,
		Name:         user.Name,
		AvatarBucket: user.Avatar.Bucket,
		AvatarRegion: user.Avatar.Region,
		AvatarUUID:   user.Avatar.UUID,
		AvatarExt:    user.Avatar.Ext,
		PasswordHash: user.PasswordHash,
		PasswordSalt: user.PasswordSalt,
		FriendOnly:   user.FriendOnly,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

func (it userItem) toDomain() *social.User {
	createdAt, _ := time.Parse(time.RFC3339, it.CreatedAt)
	return &social.User{
		ID:       it.UserID,
		Username: it.Username,
		Name:     it.Name,
		Avatar: social.Image{
			Bucket: it.AvatarBucket,
			Region: it.AvatarRegion,
			UUID:   it.AvatarUUID,
			Ext:    it.AvatarExt,
		},
		PasswordHash: it.PasswordHash,
		PasswordSalt: it.PasswordSalt,
		FriendOnly:   it.FriendOnly,
		CreatedAt:    createdAt,
	}
}

// Create writes the profile and the handle claim in one transaction.
// If another account already claimed the handle, returns a conflict.
func (r *UserRepository) Create(ctx context.Context, user *social.User) error {
	profile, err := attributevalue.MarshalMap(toUserItem(user))
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	claim, err := attributevalue.MarshalMap(handleClaimItem{
		PK:         handlePK(user.Username),
		SK:         skClaim,
		EntityType: "HANDLE_CLAIM",
		UserID:     user.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal handle claim: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.table.Name),
					Item:                claim,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.table.Name),
					Item:                profile,
					ConditionExpression: aws.String("attribute_not_exists(PK)"),
				},
			},
		},
	}

	if _, err := r.client.TransactWriteItems(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("handle already taken")
		}
		r.logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("userID", user.ID),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Created user",
		zap.String("userID", user.ID),
		zap.String("username", user.Username),
	)
	return nil
}

// GetByID fetches a profile by user ID. Missing users return (nil, nil).
func (r *UserRepository) GetByID(ctx context.Context, id string) (*social.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return it.toDomain(), nil
}

// GetByHandle fetches a profile through the handle index.
func (r *UserRepository) GetByHandle(ctx context.Context, handle string) (*social.User, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(handlePK(handle))).
			And(expression.Key("GSI1SK").Equal(expression.Value(skProfile)))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build handle query: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.Name),
		IndexName:                 aws.String(r.table.GSI1),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query handle: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return it.toDomain(), nil
}

// Exists reports whether a user profile item is present.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skProfile},
		},
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return out.Item != nil, nil
}
