package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/studiodesk/internal/shard"
	"github.com/jacentio/studiodesk/store"
)

// ErrUnprocessedItems is returned when DynamoDB keeps rejecting part of a
// batch after every retry.
var ErrUnprocessedItems = errors.New("studiodesk: backup items left unprocessed")

// batchSize is the BatchWriteItem limit.
const batchSize = 25

// singletonID is the id settings records are stored under.
const singletonID = "singleton"

// BatchWriter is the subset of the DynamoDB client used for exports.
type BatchWriter interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Exporter writes a snapshot somewhere durable.
type Exporter interface {
	Export(ctx context.Context, snap store.Snapshot) (Manifest, error)
}

// Config holds configuration for the DynamoExporter.
type Config struct {
	// Table is the backup table name, keyed by pk (hash) and sk (range).
	// Default: "studiodesk_backups"
	Table string

	// NumShards spreads a backup over this many partitions.
	// Default: 1, Max: 256
	NumShards int

	// MaxRetries bounds retries of unprocessed items per batch.
	// Default: 5
	MaxRetries int

	// RetryBackoff is the base delay between retries, doubled each attempt.
	// Default: 50ms
	RetryBackoff time.Duration
}

// DefaultConfig returns sensible defaults for a single studio.
func DefaultConfig() Config {
	return Config{
		Table:        "studiodesk_backups",
		NumShards:    1,
		MaxRetries:   5,
		RetryBackoff: 50 * time.Millisecond,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "studiodesk_backups"
	}
	if c.NumShards < 1 {
		c.NumShards = 1
	}
	if c.NumShards > shard.MaxShards {
		c.NumShards = shard.MaxShards
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 5
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 50 * time.Millisecond
	}
}

// Manifest describes one completed export.
type Manifest struct {
	BackupID    string                   `json:"backupId"`
	TakenAt     time.Time                `json:"takenAt"`
	NumShards   int                      `json:"numShards"`
	Items       int                      `json:"items"`
	Fingerprint string                   `json:"fingerprint"`
	Counts      map[store.EntityType]int `json:"counts"`
}

// DynamoExporter writes snapshots with BatchWriteItem.
type DynamoExporter struct {
	client BatchWriter
	config Config
	logger *slog.Logger
}

// NewDynamoExporter creates a DynamoExporter.
func NewDynamoExporter(client BatchWriter, config Config, logger *slog.Logger) *DynamoExporter {
	config.validate()
	if logger == nil {
		logger = slog.Default()
	}
	return &DynamoExporter{client: client, config: config, logger: logger}
}

// BackupID names the backup of a snapshot taken at t.
func BackupID(t time.Time) string {
	return "backup#" + t.UTC().Format(time.RFC3339Nano)
}

// Fingerprint digests the snapshot contents, ignoring when it was taken.
func Fingerprint(snap store.Snapshot) (string, error) {
	snap.TakenAt = time.Time{}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return shard.Fingerprint(data), nil
}

// Export writes every record of snap and then the manifest. The manifest is
// written last so its presence marks a complete backup.
func (e *DynamoExporter) Export(ctx context.Context, snap store.Snapshot) (Manifest, error) {
	fp, err := Fingerprint(snap)
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{
		BackupID:    BackupID(snap.TakenAt),
		TakenAt:     snap.TakenAt,
		NumShards:   e.config.NumShards,
		Fingerprint: fp,
		Counts:      make(map[store.EntityType]int),
	}

	var reqs []types.WriteRequest
	for _, r := range records(snap) {
		item, err := e.recordItem(m.BackupID, r)
		if err != nil {
			return Manifest{}, err
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
		m.Counts[r.entity]++
	}
	m.Items = len(reqs)

	if err := e.write(ctx, reqs); err != nil {
		return Manifest{}, err
	}

	manifest, err := e.manifestItem(m)
	if err != nil {
		return Manifest{}, err
	}
	if err := e.write(ctx, []types.WriteRequest{{PutRequest: &types.PutRequest{Item: manifest}}}); err != nil {
		return Manifest{}, err
	}

	e.logger.Info("backup exported",
		"backupID", m.BackupID,
		"items", m.Items,
		"shards", m.NumShards,
	)
	return m, nil
}

type record struct {
	entity store.EntityType
	id     string
	value  any
}

func records(snap store.Snapshot) []record {
	var out []record
	for _, c := range snap.Clients {
		out = append(out, record{store.EntityClient, c.ID, c})
	}
	for _, b := range snap.Bookings {
		out = append(out, record{store.EntityBooking, b.ID, b})
	}
	for _, g := range snap.Galleries {
		out = append(out, record{store.EntityGallery, g.ID, g})
	}
	for _, p := range snap.Packages {
		out = append(out, record{store.EntityPackage, p.ID, p})
	}
	for _, r := range snap.ReferralPrograms {
		out = append(out, record{store.EntityReferralProgram, r.ID, r})
	}
	return append(out,
		record{store.EntityUserProfile, singletonID, snap.UserProfile},
		record{store.EntityBusiness, singletonID, snap.BusinessSettings},
		record{store.EntityNotifications, singletonID, snap.NotificationSettings},
		record{store.EntitySystem, singletonID, snap.SystemSettings},
	)
}

func marshal(v any) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(v, func(o *attributevalue.EncoderOptions) {
		o.TagKey = "json"
	})
}

func (e *DynamoExporter) recordItem(backupID string, r record) (map[string]types.AttributeValue, error) {
	item, err := marshal(r.value)
	if err != nil {
		return nil, fmt.Errorf("marshal %s %s: %w", r.entity, r.id, err)
	}
	ref := shard.ItemRef(string(r.entity), r.id)
	item["pk"] = &types.AttributeValueMemberS{Value: shard.PartitionKey(backupID, ref, e.config.NumShards)}
	item["sk"] = &types.AttributeValueMemberS{Value: ref}
	item["entity_type"] = &types.AttributeValueMemberS{Value: string(r.entity)}
	item["backup_id"] = &types.AttributeValueMemberS{Value: backupID}
	return item, nil
}

func (e *DynamoExporter) manifestItem(m Manifest) (map[string]types.AttributeValue, error) {
	item, err := marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	item["pk"] = &types.AttributeValueMemberS{Value: m.BackupID + "#meta"}
	item["sk"] = &types.AttributeValueMemberS{Value: "manifest"}
	return item, nil
}

// write sends reqs in batches, retrying unprocessed items with backoff.
func (e *DynamoExporter) write(ctx context.Context, reqs []types.WriteRequest) error {
	for start := 0; start < len(reqs); start += batchSize {
		end := min(start+batchSize, len(reqs))
		pending := map[string][]types.WriteRequest{e.config.Table: reqs[start:end]}

		for attempt := 0; len(pending[e.config.Table]) > 0; attempt++ {
			if attempt > e.config.MaxRetries {
				return fmt.Errorf("%d items after %d retries: %w",
					len(pending[e.config.Table]), e.config.MaxRetries, ErrUnprocessedItems)
			}
			if attempt > 0 {
				if err := sleep(ctx, e.config.RetryBackoff<<(attempt-1)); err != nil {
					return err
				}
			}

			out, err := e.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: pending,
			})
			if err != nil {
				return fmt.Errorf("batch write: %w", err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TableInput describes the backup table for provisioning.
func TableInput(table string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}
