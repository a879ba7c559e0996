// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package deploy

import (
	"fmt"
	"os"

	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"github.com/zuhairmbj123/zws/internal/logging"
	"github.com/zuhairmbj123/zws/internal/model"
	"github.com/zuhairmbj123/zws/internal/state"
)

// RunDeployment uploads the built site in outputDir to the given target.
// The deploy key passphrase, if one was prompted for, is taken from the
// in-memory cache and wiped after use. The isTUI flag controls which i18n
// keys are used for error messages.
func RunDeployment(target model.DeployTarget, outputDir string, isTUI bool) (UploadStats, error) {
	var stats UploadStats

	if _, err := os.Stat(outputDir); err != nil {
		return stats, fmt.Errorf(i18n.T("deploy.error_no_output"), outputDir)
	}

	// Get passphrase from the in-memory cache.
	passphrase := state.PassphraseCache.Get()
	// It's critical to wipe the passphrase from memory after we're done
	// with it, even if the connection fails.
	defer func() {
		for i := range passphrase {
			passphrase[i] = 0
		}
	}()

	deployer, err := NewDeployer(target.Host, target.User, target.KeyPath, passphrase)
	if err != nil {
		if isTUI {
			return stats, fmt.Errorf(i18n.T("deploy.error_connection_failed_tui"), target.Name, err)
		}
		return stats, fmt.Errorf(i18n.T("deploy.error_connection_failed"), err)
	}
	defer deployer.Close()

	stats, err = deployer.UploadTree(outputDir, remoteJoin(target.RemoteRoot))
	if err != nil {
		return stats, fmt.Errorf(i18n.T("deploy.error_upload_failed"), target.Name, err)
	}

	logging.Infof("deployed %d files (%d bytes) to %s", stats.Files, stats.Bytes, target.Name)

	details := fmt.Sprintf("target: %s, host: %s, files: %d, bytes: %d", target.Name, target.Host, stats.Files, stats.Bytes)
	if err := db.LogAction("DEPLOY", details); err != nil {
		logging.Warnf("failed to write audit log entry for deploy: %v", err)
	}

	return stats, nil
}

// PlanUpload walks outputDir without connecting anywhere and reports what
// a deployment would transfer. Used by the --dry-run flag.
func PlanUpload(outputDir string) (UploadStats, []string, error) {
	var stats UploadStats
	var files []string

	err := walkLocalFiles(outputDir, func(rel string, size int64) {
		stats.Files++
		stats.Bytes += size
		files = append(files, rel)
	})
	if err != nil {
		return stats, nil, err
	}
	return stats, files, nil
}
