// Package shard provides partition key generation for backup items in DynamoDB.
package shard

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
)

// MaxShards is the upper bound for numShards.
const MaxShards = 256

// ItemRef is the sort key of a backed-up record: "<entityType>#<id>".
func ItemRef(entityType, id string) string {
	return entityType + "#" + id
}

// PartitionKey computes the sharded partition key of a backup item.
// With numShards=1, all items of a backup go to shard "00".
// With numShards>1, items are distributed across shards based on itemRef hash.
func PartitionKey(backupID, itemRef string, numShards int) string {
	if numShards <= 1 {
		return fmt.Sprintf("%s#00", backupID)
	}
	if numShards > MaxShards {
		numShards = MaxShards
	}
	h := fnv.New32a()
	h.Write([]byte(itemRef))
	shard := h.Sum32() % uint32(numShards)
	return fmt.Sprintf("%s#%02x", backupID, shard)
}

// AllPartitionKeys lists every partition key a backup with numShards uses,
// in shard order. Readers query each one to collect a full backup.
func AllPartitionKeys(backupID string, numShards int) []string {
	if numShards <= 1 {
		return []string{fmt.Sprintf("%s#00", backupID)}
	}
	if numShards > MaxShards {
		numShards = MaxShards
	}
	keys := make([]string, numShards)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s#%02x", backupID, i)
	}
	return keys
}

// Fingerprint returns a 128-bit hex digest of data. Backups use it to detect
// snapshots that did not change since the previous export.
func Fingerprint(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:16])
}
