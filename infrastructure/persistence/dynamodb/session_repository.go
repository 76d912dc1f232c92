package dynamodb

import (
	"context"
	"fmt"

	"fbclone-backend/application/ports"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"
	"fbclone-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// SessionRepository stores login sessions keyed by token. Expiry is
// checked by the identity resolver at read time; the TTL attribute only
// lets DynamoDB garbage collect long dead sessions.
type SessionRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.SessionRepository {
	return &SessionRepository{client: client, table: table, logger: logger}
}

type sessionItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Token      string `dynamodbav:"Token"`
	UserID     string `dynamodbav:"UserID"`
	ExpiresAt  string `dynamodbav:"ExpiresAt"`
	TTL        int64  `dynamodbav:"TTL"`
}

// Create persists a session. Tokens carry 128 bits of randomness, so a
// key collision is treated as an error rather than silently overwritten.
func (r *SessionRepository) Create(ctx context.Context, session *social.Session) error {
	av, err := attributevalue.MarshalMap(sessionItem{
		PK:         tokenPK(session.Token),
		SK:         skSession,
		EntityType: "SESSION",
		Token:      session.Token,
		UserID:     session.UserID,
		ExpiresAt:  utils.FormatRFC3339(session.ExpiresAt),
		TTL:        session.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.NewConflictError("token already exists")
		}
		r.logger.Error("Failed to create session",
			zap.Error(err),
			zap.String("userID", session.UserID),
		)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken fetches a session. Unknown tokens return (nil, nil).
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*social.Session, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: tokenPK(token)},
			"SK": &types.AttributeValueMemberS{Value: skSession},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	expiresAt, err := utils.ParseRFC3339(it.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session expiry: %w", err)
	}
	return &social.Session{
		Token:     it.Token,
		UserID:    it.UserID,
		ExpiresAt: expiresAt,
	}, nil
}

// Delete removes a session and reports whether one existed.
func (r *SessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: tokenPK(token)},
			"SK": &types.AttributeValueMemberS{Value: skSession},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return len(out.Attributes) > 0, nil
}
