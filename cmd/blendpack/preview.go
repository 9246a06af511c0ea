// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"blendpack-cli/pkg/addon"
	"blendpack-cli/pkg/blinfo"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	previewWidth int
	previewDoc   string

	// previewCmd renders the generated release documents without packaging.
	previewCmd = &cobra.Command{
		Use:   "preview [addon-dir]",
		Short: "Preview the release documents that packaging would generate",
		Long: `Preview the release documents that packaging would generate,
rendered as styled markdown in the terminal.

Documents are built from the addon's bl_info metadata exactly as the
package command would write them, but nothing touches the disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPreview,
	}
)

func init() {
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 100, "word wrap width")
	previewCmd.Flags().StringVarP(&previewDoc, "doc", "d", "", "render a single document (LICENSE, CHANGELOG.md, INSTALLATION.md)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	srcDir := "."
	if len(args) > 0 {
		srcDir = args[0]
	}

	m, err := loadManifestFor(srcDir)
	if err != nil {
		return err
	}

	meta, err := blinfo.ParseFile(filepath.Join(srcDir, blinfo.EntryFile))
	if err != nil {
		return err
	}

	docs := addon.RenderDocuments(m, meta, time.Now())
	if previewDoc != "" {
		docs = filterDocs(docs, previewDoc)
		if len(docs) == 0 {
			return fmt.Errorf("no generated document named %q: check the manifest's generate block", previewDoc)
		}
	}
	if len(docs) == 0 {
		fmt.Println(SubtitleStyle.Render("nothing to preview: all generated documents are disabled in the manifest"))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, doc := range docs {
		fmt.Println(TitleStyle.Render(doc.Name))
		rendered, renderErr := renderer.Render(doc.Content)
		if renderErr != nil {
			return fmt.Errorf("failed to render %s: %w", doc.Name, renderErr)
		}
		fmt.Print(rendered)
	}

	return nil
}

func filterDocs(docs []addon.Document, name string) []addon.Document {
	var out []addon.Document
	for _, doc := range docs {
		if doc.Name == name {
			out = append(out, doc)
		}
	}
	return out
}
