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

// PostRepository stores posts keyed by post ID with an author index so
// a profile page can list a user's posts in chronological order.
type PostRepository struct {
	client *dynamodb.Client
	table  Table
	logger *zap.Logger
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(client *dynamodb.Client, table Table, logger *zap.Logger) ports.PostRepository {
	return &PostRepository{client: client, table: table, logger: logger}
}

// postItem represents the DynamoDB item structure for a post.
type postItem struct {
	PK         string      `dynamodbav:"PK"`
	SK         string      `dynamodbav:"SK"`
	GSI1PK     string      `dynamodbav:"GSI1PK"`
	GSI1SK     string      `dynamodbav:"GSI1SK"`
	EntityType string      `dynamodbav:"EntityType"`
	PostID     string      `dynamodbav:"PostID"`
	PosterID   string      `dynamodbav:"PosterID"`
	Timestamp  int64       `dynamodbav:"Timestamp"`
	Message    string      `dynamodbav:"Message"`
	Images     []imageSpec `dynamodbav:"Images,omitempty"`
}

type imageSpec struct {
	Bucket string `dynamodbav:"Bucket"`
	Region string `dynamodbav:"Region"`
	UUID   string `dynamodbav:"UUID"`
	Ext    string `dynamodbav:"Ext"`
}

func toImageSpecs(images []social.Image) []imageSpec {
	if len(images) == 0 {
		return nil
	}
	specs := make([]imageSpec, len(images))
	for i, img := range images {
		specs[i] = imageSpec(img)
	}
	return specs
}

func fromImageSpecs(specs []imageSpec) []social.Image {
	if len(specs) == 0 {
		return nil
	}
	images := make([]social.Image, len(specs))
	for i, s := range specs {
		images[i] = social.Image(s)
	}
	return images
}

// authorSortKey orders content by timestamp, with the ID as a
// tiebreaker so two items written in the same millisecond stay distinct.
func authorSortKey(prefix string, timestamp int64, id string) string {
	return fmt.Sprintf("%s#%020d#%s", prefix, timestamp, id)
}

// Create persists a post. Post IDs are generated server side so an ID
// collision means a programming error, not a user conflict.
func (r *PostRepository) Create(ctx context.Context, post *social.Post) error {
	item := postItem{
		PK:         postPK(post.ID),
		SK:         skPost,
		GSI1PK:     userPK(post.PosterID),
		GSI1SK:     authorSortKey(skPost, post.Timestamp, post.ID),
		EntityType: "POST",
		PostID:     post.ID,
		PosterID:   post.PosterID,
		Timestamp:  post.Timestamp,
		Message:    post.Message,
		Images:     toImageSpecs(post.Images),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal post: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(r.table.Name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to create post",
			zap.Error(err),
			zap.String("postID", post.ID),
		)
		return fmt.Errorf("failed to create post: %w", err)
	}

	r.logger.Info("Created post",
		zap.String("postID", post.ID),
		zap.String("posterID", post.PosterID),
	)
	return nil
}

// GetByID fetches a post by ID. Missing posts return (nil, nil).
func (r *PostRepository) GetByID(ctx context.Context, id string) (*social.Post, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: postPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skPost},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var it postItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &social.Post{
		ID:        it.PostID,
		Timestamp: it.Timestamp,
		PosterID:  it.PosterID,
		Message:   it.Message,
		Images:    fromImageSpecs(it.Images),
	}, nil
}

// Exists reports whether a post item is present.
func (r *PostRepository) Exists(ctx context.Context, id string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.Name),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: postPK(id)},
			"SK": &types.AttributeValueMemberS{Value: skPost},
		},
		ProjectionExpression: aws.String("PK"),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check post: %w", err)
	}
	return out.Item != nil, nil
}

// IDsByAuthor lists a user's post IDs in chronological order.
func (r *PostRepository) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	return queryIDsByAuthor(ctx, r.client, r.table, authorID, skPost, "PostID")
}

// queryIDsByAuthor pages through the author index and projects out the
// named ID attribute. Shared by posts and replies.
func queryIDsByAuthor(ctx context.Context, client *dynamodb.Client, table Table, authorID, prefix, idAttr string) ([]string, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("GSI1PK").Equal(expression.Value(userPK(authorID))).
			And(expression.Key("GSI1SK").BeginsWith(prefix + "#"))).
		WithProjection(expression.NamesList(expression.Name(idAttr))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build author query: %w", err)
	}

	ids := []string{}
	var startKey map[string]types.AttributeValue
	for {
		out, err := client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table.Name),
			IndexName:                 aws.String(table.GSI1),
			KeyConditionExpression:    expr.KeyCondition(),
			ProjectionExpression:      expr.Projection(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query author content: %w", err)
		}

		for _, item := range out.Items {
			if v, ok := item[idAttr].(*types.AttributeValueMemberS); ok {
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
