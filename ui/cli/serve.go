// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/build"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/server"
)

var serveDrafts bool
var serveNoWatch bool
var servePort int

func registerServeFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("drafts") == nil {
		cmd.Flags().BoolVarP(&serveDrafts, "drafts", "D", false, "Include draft pages")
	}
	if cmd.Flags().Lookup("no-watch") == nil {
		cmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Serve without watching for changes")
	}
	if cmd.Flags().Lookup("port") == nil {
		cmd.Flags().IntVarP(&servePort, "port", "P", 0, "Serve on exactly this port instead of probing the configured range")
	}
}

// serveCmd represents the 'serve' command.
// It builds the site, serves it on the first free port of the configured
// range, and rebuilds whenever a source file changes.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build and serve the site locally, rebuilding on change",
	Long: `Runs a local development server. The site is built first, then served
from the output directory. The first free port in the configured
server.port_min-server.port_max range is used. Content, static and
template changes trigger an automatic rebuild unless --no-watch is set.

Drafts are excluded exactly like a production build; pass --drafts to
preview them.`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rebuild := func() (*build.Summary, error) {
			return build.Run(build.Options{Config: appConfig, Drafts: serveDrafts})
		}

		summary, err := rebuild()
		if err != nil {
			log.Fatalf(i18n.T("build.error_failed"), err)
		}

		serverCfg := appConfig.Server
		if servePort > 0 {
			serverCfg.PortMin = servePort
			serverCfg.PortMax = servePort
		}
		srv := server.New(serverCfg, summary.OutputDir)
		srv.MarkBuilt(time.Now())

		if !serveNoWatch {
			roots := []string{appConfig.Paths.Content, appConfig.Paths.Static}
			if appConfig.Paths.Templates != "" {
				roots = append(roots, appConfig.Paths.Templates)
			}
			watcher, werr := server.NewWatcher(roots, func() {
				if _, berr := rebuild(); berr != nil {
					log.Errorf(i18n.T("serve.error_rebuild"), berr)
					return
				}
				srv.MarkBuilt(time.Now())
				log.Info(i18n.T("serve.rebuilt"))
			})
			if werr != nil {
				log.Fatalf(i18n.T("serve.error_watch"), werr)
			}
			defer watcher.Close()
			go watcher.Run(ctx)
		}

		err = srv.ListenAndServe(ctx, func(port int) {
			fmt.Printf(i18n.T("serve.listening")+"\n", appConfig.Server.Host, port)
		})
		if err != nil {
			log.Fatalf(i18n.T("serve.error_serve"), err)
		}
	},
}
