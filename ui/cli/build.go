// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/build"
	"github.com/zuhairmbj123/zws/internal/i18n"
)

var buildDrafts bool
var buildForce bool
var buildOutput string

func registerBuildFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("drafts") == nil {
		cmd.Flags().BoolVarP(&buildDrafts, "drafts", "D", false, "Include draft pages in the build")
	}
	if cmd.Flags().Lookup("force") == nil {
		cmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Ignore stored source hashes and re-render every page")
	}
	if cmd.Flags().Lookup("output") == nil {
		cmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output directory (overrides paths.output)")
	}
}

// buildCmd represents the 'build' command.
// It renders the markdown tree into the output directory and regenerates
// the SEO artifacts.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `Scans the content directory for markdown files, renders each page to
HTML, copies static assets, and writes index.html, sitemap.xml,
sitemap.xml.gz, robots.txt and feed.xml.

Pages whose source file is unchanged since the last build are skipped;
use --force to re-render everything.`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		summary, err := build.Run(build.Options{
			Config: appConfig,
			Drafts: buildDrafts,
			Force:  buildForce,
			Output: buildOutput,
		})
		if err != nil {
			log.Fatalf(i18n.T("build.error_failed"), err)
		}

		rec := summary.Record
		fmt.Printf(i18n.T("build.success")+"\n",
			rec.PagesBuilt, rec.PagesSkipped, summary.OutputDir, rec.Duration.Round(time.Millisecond))
	},
}
