// Package dynamo provides the managed key-value Store backed by Amazon
// DynamoDB. The table is keyed by the "username" string attribute and holds
// the ISO date in "dateOfBirth".
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/birthdayapi/birthdayapi/internal/model"
	"github.com/birthdayapi/birthdayapi/internal/storage"
)

const (
	keyAttribute = "username"
	dobAttribute = "dateOfBirth"
)

// API is the subset of the DynamoDB client used by Store.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Options configures the DynamoDB client and table provisioning.
type Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the service endpoint, e.g. for dynamodb-local.
	Endpoint      string
	Table         string
	ReadCapacity  int64
	WriteCapacity int64
	// TableWait bounds how long EnsureTable waits for a new table to become active.
	TableWait time.Duration
}

// item is the on-table representation of a birth record.
type item struct {
	Username    string `dynamodbav:"username"`
	DateOfBirth string `dynamodbav:"dateOfBirth"`
}

// Store persists birth records in a DynamoDB table.
type Store struct {
	client API
	opts   Options
}

// New builds a DynamoDB client from opts, then provisions the table if it
// does not exist and blocks until it is active.
func New(ctx context.Context, opts Options) (*Store, error) {
	client, err := newClient(ctx, opts)
	if err != nil {
		return nil, err
	}

	s := NewWithClient(client, opts)
	if err := s.EnsureTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// NewWithClient wraps an existing client without touching the table.
func NewWithClient(client API, opts Options) *Store {
	return &Store{client: client, opts: opts}
}

func newClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// EnsureTable creates the table with fixed provisioned throughput when it is
// missing and waits for it to become active.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.opts.Table),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("describe table %s: %w", s.opts.Table, err)
	}

	_, err = s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.opts.Table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttribute), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(s.opts.ReadCapacity),
			WriteCapacityUnits: aws.Int64(s.opts.WriteCapacity),
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("create table %s: %w", s.opts.Table, err)
		}
		// Another instance is creating it; fall through to the waiter.
	}

	wait := s.opts.TableWait
	if wait <= 0 {
		wait = 2 * time.Minute
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = time.Second
		o.MaxDelay = 10 * time.Second
	})
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.opts.Table)}, wait); err != nil {
		return fmt.Errorf("wait for table %s: %w", s.opts.Table, err)
	}
	return nil
}

// Upsert overwrites the item for username.
func (s *Store) Upsert(ctx context.Context, username string, dob time.Time) error {
	av, err := attributevalue.MarshalMap(item{
		Username:    username,
		DateOfBirth: model.FormatDate(dob),
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.opts.Table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Fetch reads the item for username.
func (s *Store) Fetch(ctx context.Context, username string) (time.Time, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.opts.Table),
		Key: map[string]types.AttributeValue{
			keyAttribute: &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return time.Time{}, storage.ErrNotFound
	}

	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return time.Time{}, fmt.Errorf("unmarshal item: %w", err)
	}
	if it.DateOfBirth == "" {
		return time.Time{}, fmt.Errorf("item for %s has no %s attribute", username, dobAttribute)
	}

	dob, err := model.ParseDate(it.DateOfBirth)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode stored date: %w", err)
	}
	return dob, nil
}

// Ping describes the table.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.opts.Table),
	})
	return err
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
