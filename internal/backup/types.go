package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/hsv/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per document.
const DefaultRetentionCount = 5

// idLayout formats backup IDs from their creation time.
const idLayout = "20060102T150405.000"

// manifestName is the manifest file inside each backup directory.
const manifestName = "manifest.json"

var (
	// ErrNoBackupsFound indicates no backups exist for the document.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the stored copy no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup's directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Document is the base name of the backed up file.
	Document string `json:"document"`

	// FromVersion is the document version before the change that prompted
	// the backup. Empty when unknown.
	FromVersion string `json:"from_version,omitempty"`

	File File `json:"file"`

	// HSVVersion is the release that wrote the backup.
	HSVVersion string `json:"hsv_version"`

	// ID is the backup directory name. It is filled in on load.
	ID string `json:"-"`
}

// File records the copied document.
type File struct {
	OriginalPath string      `json:"original_path"`
	SHA256Hash   string      `json:"sha256_hash"`
	Mode         fs.FileMode `json:"mode"`
}
