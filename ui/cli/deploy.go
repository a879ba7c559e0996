// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"os"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/deploy"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/model"
	"github.com/zuhairmbj123/zws/internal/state"
	"golang.org/x/term"
)

var deployDryRun bool
var deployPassphrase string

func registerDeployFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("dry-run") == nil {
		cmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "List what would be uploaded without connecting")
	}
	if cmd.Flags().Lookup("passphrase") == nil {
		cmd.Flags().StringVarP(&deployPassphrase, "passphrase", "p", "", "Passphrase for the deploy key (prompted when the key is encrypted)")
	}
}

// findDeployTarget resolves a target name against the configured deploy
// targets. An empty name is allowed when exactly one target exists.
func findDeployTarget(targets []config.DeployConfig, name string) (*model.DeployTarget, error) {
	if len(targets) == 0 {
		return nil, errors.New(i18n.T("deploy.error_no_targets"))
	}
	if name == "" {
		if len(targets) == 1 {
			t := targets[0]
			return &model.DeployTarget{Name: t.Name, Host: t.Host, User: t.User, RemoteRoot: t.RemoteRoot, KeyPath: t.KeyPath}, nil
		}
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.Name
		}
		return nil, fmt.Errorf(i18n.T("deploy.error_ambiguous_target"), names)
	}
	for _, t := range targets {
		if t.Name == name {
			return &model.DeployTarget{Name: t.Name, Host: t.Host, User: t.User, RemoteRoot: t.RemoteRoot, KeyPath: t.KeyPath}, nil
		}
	}
	return nil, fmt.Errorf(i18n.T("deploy.error_unknown_target"), name)
}

// deployCmd represents the 'deploy' command.
// It uploads the built output directory to a configured remote web root
// over SFTP.
var deployCmd = &cobra.Command{
	Use:   "deploy [target]",
	Short: "Upload the built site to a remote web root over SFTP",
	Long: `Uploads the output directory to a deploy target defined in the config
file. If only one target is configured, the name can be omitted.

The remote host's key must have been trusted first with 'zws trust-host'.
Authentication uses the target's key_path if set, falling back to a
running SSH agent. Files are uploaded to temporary names and renamed
into place so the live site never serves a half-written page.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		var name string
		if len(args) > 0 {
			name = args[0]
		}
		target, err := findDeployTarget(appConfig.Deploy, name)
		if err != nil {
			log.Fatalf("%v", err)
		}

		outDir := appConfig.Paths.Output
		if outDir == "" {
			outDir = "public"
		}

		if deployDryRun {
			stats, files, err := deploy.PlanUpload(outDir)
			if err != nil {
				log.Fatalf(i18n.T("deploy.error_plan"), err)
			}
			for _, f := range files {
				fmt.Println(f)
			}
			fmt.Printf(i18n.T("deploy.dry_run_summary")+"\n", stats.Files, stats.Bytes, target.String())
			return
		}

		// Stash the passphrase (flag or prompt) in the in-memory cache so
		// the deployer can pick it up; it is wiped after the connection.
		if deployPassphrase != "" {
			state.PassphraseCache.Set([]byte(deployPassphrase))
		} else if target.KeyPath != "" && deploy.KeyNeedsPassphrase(target.KeyPath) {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Printf(i18n.T("deploy.passphrase_prompt"), target.KeyPath)
				bytePassphrase, perr := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if perr != nil {
					log.Fatalf(i18n.T("deploy.error_read_passphrase"), perr)
				}
				state.PassphraseCache.Set(bytePassphrase)
			}
		}
		defer state.PassphraseCache.Clear()

		stats, err := deploy.RunDeployment(*target, outDir, false)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf(i18n.T("deploy.success")+"\n", stats.Files, stats.Bytes, target.String())
	},
}
