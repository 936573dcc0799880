// Package backup keeps copies of configuration documents before a
// migration rewrites them.
//
// Each backup is a directory named after its creation time:
//
//	<root>/
//	└── {document}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {document}
//
// The manifest records the original path, permissions and a SHA-256 hash
// of the copy. [Manager.Restore] refuses a copy whose hash no longer
// matches, returning [ErrBackupCorrupted]. After every backup the oldest
// backups of the document beyond the retention count are pruned.
package backup
