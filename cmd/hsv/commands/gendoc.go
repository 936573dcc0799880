package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/hsv/cmd"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/paths"
)

var (
	genDocDir string
	genDocMan bool
)

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().BoolVar(&genDocMan, "man", false, "generate man pages instead of Markdown")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE:   runGenDoc,
}

func runGenDoc(c *cobra.Command, _ []string) error {
	if genDocDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir <path>")
	}
	if err := paths.EnsureDir(genDocDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	var err error
	if genDocMan {
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{
			Title:   "HSV",
			Section: "1",
			Source:  "hsv " + cmd.Version,
		}, genDocDir)
	} else {
		err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler)
	}
	if err != nil {
		return errors.Wrap(err, "generating documentation")
	}

	fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

// filePrepender adds front matter naming the command, e.g. hsv_backups_list.md
// becomes "hsv backups list".
func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func linkHandler(name string) string {
	return "/docs/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
