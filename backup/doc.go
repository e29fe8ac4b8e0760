// Package backup exports store snapshots to a DynamoDB table.
//
// Backups are write-only: the store is never restored from them. Each export
// writes one item per record plus a manifest item:
//
//	pk                          sk               attributes
//	backup#<takenAt>#<shard>    client#<id>      record fields (json names), entity_type, backup_id
//	backup#<takenAt>#meta       manifest         Manifest fields
//
// Records are spread over Config.NumShards partitions. Exports run on the
// schedule named by SystemSettings.BackupFrequency while AutoBackup is on,
// either in-process through [Scheduler] or from a scheduled Lambda through
// [Handler].
package backup
