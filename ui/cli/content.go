// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/content"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var newTitle string
var newTags string
var newDraft bool

func registerContentFlags() {
	if contentNewCmd.Flags().Lookup("title") == nil {
		contentNewCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Page title (defaults to the file name)")
	}
	if contentNewCmd.Flags().Lookup("tags") == nil {
		contentNewCmd.Flags().StringVar(&newTags, "tags", "", "Comma-separated tags")
	}
	if contentNewCmd.Flags().Lookup("draft") == nil {
		contentNewCmd.Flags().BoolVar(&newDraft, "draft", true, "Mark the new page as a draft")
	}
}

// contentCmd groups the content management subcommands.
var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage markdown content (new, list, search)",
}

// contentNewCmd scaffolds a new markdown file with frontmatter.
var contentNewCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create a new markdown page with frontmatter",
	Long: `Creates a new markdown file under the content directory, pre-filled
with YAML frontmatter. The path is relative to paths.content and the
.md extension is appended when missing.

Example:
  zws content new blog/launch --title "Launch day" --tags news,product`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		relPath := filepath.ToSlash(args[0])
		if !strings.HasSuffix(relPath, ".md") {
			relPath += ".md"
		}

		title := newTitle
		if title == "" {
			base := strings.TrimSuffix(filepath.Base(relPath), ".md")
			words := strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
			title = cases.Title(language.English).String(words)
		}

		fullPath := filepath.Join(appConfig.Paths.Content, filepath.FromSlash(relPath))
		if _, err := os.Stat(fullPath); err == nil {
			log.Fatalf(i18n.T("content.error_exists"), fullPath)
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			log.Fatalf(i18n.T("content.error_create"), err)
		}

		var b strings.Builder
		b.WriteString("---\n")
		fmt.Fprintf(&b, "title: %q\n", title)
		fmt.Fprintf(&b, "description: \"\"\n")
		fmt.Fprintf(&b, "slug: %s\n", content.Slugify(title))
		if newTags != "" {
			fmt.Fprintf(&b, "tags: [%s]\n", newTags)
		}
		fmt.Fprintf(&b, "date: %s\n", time.Now().Format("2006-01-02"))
		fmt.Fprintf(&b, "draft: %t\n", newDraft)
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "# %s\n", title)

		if err := os.WriteFile(fullPath, []byte(b.String()), 0644); err != nil {
			log.Fatalf(i18n.T("content.error_create"), err)
		}
		fmt.Printf(i18n.T("content.created")+"\n", fullPath)
	},
}

// contentListCmd lists the pages recorded in the content index.
var contentListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all indexed pages",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		pages, err := db.GetAllPages()
		if err != nil {
			log.Fatalf(i18n.T("content.error_list"), err)
		}
		if len(pages) == 0 {
			fmt.Println(i18n.T("content.none_indexed"))
			return
		}
		printPages(pages)
	},
}

// contentSearchCmd searches the content index.
var contentSearchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search indexed pages by title, slug, description or tag",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		pages, err := db.SearchPages(query)
		if err != nil {
			log.Fatalf(i18n.T("content.error_search"), err)
		}
		if len(pages) == 0 {
			fmt.Printf(i18n.T("content.no_matches")+"\n", query)
			return
		}
		printPages(pages)
	},
}

func printPages(pages []model.Page) {
	for _, p := range pages {
		status := " "
		if p.Draft {
			status = "d"
		}
		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format("2006-01-02")
		}
		fmt.Printf("%s %-10s %-30s %s\n", status, date, p.Slug, p.Title)
	}
}

func init() {
	contentCmd.AddCommand(contentNewCmd, contentListCmd, contentSearchCmd)
}
