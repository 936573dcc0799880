package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/backup"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/store"
)

func init() {
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List and restore copies kept before migrations",
	Long: `Every migration first copies the document into the backup directory.
The newest copies of each document are kept; older ones are pruned.`,
}

var backupsListCmd = &cobra.Command{
	Use:   "list <name>",
	Short: "List the backups of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupsList,
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <name> [id]",
	Short: "Restore a document from a backup",
	Long: `Restore a document to the copy taken before a migration.

Without an ID the newest backup is restored.`,
	Example: `  hsv backups restore old
  hsv backups restore old 20260123T100712.000`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackupsRestore,
}

// backupName maps a document name to the file name its backups are kept
// under. Documents deleted since their backup are matched by name.
func backupName(c *cobra.Command, name string) (string, error) {
	s, err := newStore(c)
	if err != nil {
		return "", err
	}
	info, err := s.Find(c.Context(), name)
	switch {
	case err == nil:
		return filepath.Base(info.Path), nil
	case errors.Is(err, errors.ErrNotFound):
		if filepath.Ext(name) == "" {
			name += ".json"
		}
		return name, nil
	default:
		return "", userError(err)
	}
}

func runBackupsList(c *cobra.Command, args []string) error {
	name, err := backupName(c, args[0])
	if err != nil {
		return err
	}

	list, err := newBackups().List(name)
	if err != nil {
		return backupError(err, args[0])
	}

	tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tFROM")
	for _, m := range list {
		from := m.FromVersion
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04:05"), from)
	}
	return tw.Flush()
}

func runBackupsRestore(c *cobra.Command, args []string) error {
	name, err := backupName(c, args[0])
	if err != nil {
		return err
	}

	mgr := newBackups()
	var id string
	if len(args) == 2 {
		id = args[1]
	} else {
		list, err := mgr.List(name)
		if err != nil {
			return backupError(err, args[0])
		}
		id = list[0].ID
	}

	manifest, err := mgr.Restore(name, id)
	if err != nil {
		return backupError(err, args[0])
	}
	fmt.Fprintf(c.OutOrStdout(), "Restored %s from backup %s\n", store.DisplayName(manifest.File.OriginalPath), manifest.ID)
	return nil
}

func backupError(err error, name string) error {
	switch {
	case errors.Is(err, backup.ErrNoBackupsFound):
		return errors.NewUserError(errors.Wrapf(err, "%s", name), "Run: hsv backups list "+name)
	case errors.Is(err, backup.ErrBackupCorrupted):
		return errors.NewSystemError(err, "Restore an older backup by ID")
	default:
		return errors.NewSystemError(err, "")
	}
}
