// Package di wires the application together with google/wire.
package di

import (
	"context"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/gate"
	"fbclone-backend/application/ports"
	"fbclone-backend/application/relationships"
	"fbclone-backend/application/social"
	"fbclone-backend/application/views"
	"fbclone-backend/infrastructure/config"
	"fbclone-backend/infrastructure/messaging/eventbridge"
	"fbclone-backend/infrastructure/persistence/dynamodb"
	"fbclone-backend/infrastructure/persistence/memory"
	"fbclone-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Users      ports.UserRepository
	Posts      ports.PostRepository
	Replies    ports.ReplyRepository
	Likes      ports.LikeRepository
	Requests   ports.FriendRequestRepository
	Sessions   ports.SessionRepository
	Events     ports.EventPublisher
	Metrics    *observability.Metrics
	Resolver   *auth.Resolver
	Gate       *gate.Gate
	Service    *social.Service
	Operations *social.Operations
}

// ProvideLogger creates a new logger instance.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client.
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client.
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTable describes the single-table layout from configuration.
func ProvideTable(cfg *config.Config) dynamodb.Table {
	return dynamodb.Table{
		Name: cfg.DynamoDBTable,
		GSI1: cfg.GSI1Name,
		GSI2: cfg.GSI2Name,
	}
}

// ProvideMemoryStore creates the in-memory store backing every
// repository when the environment is "test".
func ProvideMemoryStore() *memory.Store {
	return memory.NewStore()
}

// ProvideUserRepository creates a user repository.
func ProvideUserRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.UserRepository {
	if cfg.IsTest() {
		return mem.Users()
	}
	return dynamodb.NewUserRepository(client, table, logger)
}

// ProvidePostRepository creates a post repository.
func ProvidePostRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.PostRepository {
	if cfg.IsTest() {
		return mem.Posts()
	}
	return dynamodb.NewPostRepository(client, table, logger)
}

// ProvideReplyRepository creates a reply repository.
func ProvideReplyRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.ReplyRepository {
	if cfg.IsTest() {
		return mem.Replies()
	}
	return dynamodb.NewReplyRepository(client, table, logger)
}

// ProvideLikeRepository creates a like repository.
func ProvideLikeRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.LikeRepository {
	if cfg.IsTest() {
		return mem.Likes()
	}
	return dynamodb.NewLikeRepository(client, table, logger)
}

// ProvideFriendRequestRepository creates a friend request repository.
func ProvideFriendRequestRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.FriendRequestRepository {
	if cfg.IsTest() {
		return mem.Requests()
	}
	return dynamodb.NewFriendRequestRepository(client, table, logger)
}

// ProvideSessionRepository creates a session repository.
func ProvideSessionRepository(cfg *config.Config, mem *memory.Store, client *awsdynamodb.Client, table dynamodb.Table, logger *zap.Logger) ports.SessionRepository {
	if cfg.IsTest() {
		return mem.Sessions()
	}
	return dynamodb.NewSessionRepository(client, table, logger)
}

// ProvideEventPublisher creates an event publisher, or a no-op one when
// events are disabled.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return ports.NopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch metrics recorder.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics("FBClone/API", client, cfg.EnableMetrics, logger)
}

// ProvideResolver creates the identity resolver.
func ProvideResolver(sessions ports.SessionRepository, logger *zap.Logger) *auth.Resolver {
	return auth.NewResolver(sessions, logger)
}

// ProvideGate creates the operation gate.
func ProvideGate(resolver *auth.Resolver, logger *zap.Logger, metrics *observability.Metrics) *gate.Gate {
	return gate.NewGate(resolver, logger, metrics)
}

// ProvideRelationships creates the relationship engine.
func ProvideRelationships(requests ports.FriendRequestRepository, likes ports.LikeRepository) *relationships.Engine {
	return relationships.NewEngine(requests, likes)
}

// ProvideViewDeps bundles the dependencies shared by all entity views.
func ProvideViewDeps(
	users ports.UserRepository,
	posts ports.PostRepository,
	replies ports.ReplyRepository,
	rel *relationships.Engine,
) *views.Deps {
	return &views.Deps{Users: users, Posts: posts, Replies: replies, Rel: rel}
}

// ProvideService creates the social service.
func ProvideService(
	users ports.UserRepository,
	posts ports.PostRepository,
	replies ports.ReplyRepository,
	likes ports.LikeRepository,
	requests ports.FriendRequestRepository,
	sessions ports.SessionRepository,
	rel *relationships.Engine,
	viewDeps *views.Deps,
	events ports.EventPublisher,
	logger *zap.Logger,
) *social.Service {
	return social.NewService(users, posts, replies, likes, requests, sessions, rel, viewDeps, events, logger)
}

// ProvideOperations registers every operation on the gate.
func ProvideOperations(g *gate.Gate, svc *social.Service) *social.Operations {
	return social.NewOperations(g, svc)
}
