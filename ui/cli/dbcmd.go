// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
)

// dbMaintainCmd runs database maintenance tasks for the configured database.
var dbMaintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
	Long:    `Runs engine-specific maintenance tasks (VACUUM, OPTIMIZE TABLE, PRAGMA optimize) on the content index.`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if err := db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
			log.Fatalf(i18n.T("db.error_maintenance"), err)
		}
		fmt.Println(i18n.T("db.maintenance_done"))
	},
}

// dbLogCmd prints the audit trail recorded for builds, deploys and content
// index mutations.
var dbLogCmd = &cobra.Command{
	Use:     "db-log",
	Short:   "Show the audit log",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		if limit > 0 {
			recent, err := db.GetRecentAuditLogEntries(limit)
			if err != nil {
				log.Fatalf(i18n.T("db.error_log"), err)
			}
			for _, e := range recent {
				fmt.Printf("%s  %-12s %-14s %s\n", e.Timestamp, e.Username, e.Action, e.Details)
			}
			return
		}

		all, err := db.GetAllAuditLogEntries()
		if err != nil {
			log.Fatalf(i18n.T("db.error_log"), err)
		}
		for _, e := range all {
			fmt.Printf("%s  %-12s %-14s %s\n", e.Timestamp, e.Username, e.Action, e.Details)
		}
	},
}
