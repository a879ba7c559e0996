// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zuhairmbj123/zws/internal/db"
	"github.com/zuhairmbj123/zws/internal/deploy"
	"github.com/zuhairmbj123/zws/internal/i18n"
	"golang.org/x/crypto/ssh"
)

// trustHostCmd represents the 'trust-host' command.
// It facilitates the initial trust of a deploy host by fetching its public
// SSH key, displaying its fingerprint, and prompting the user to save it
// to the database as a known host.
var trustHostCmd = &cobra.Command{
	Use:   "trust-host <host>",
	Short: "Adds a host's public key to the list of known hosts",
	Long: `Connects to a deploy host for the first time, retrieves its public key,
and prompts the user to save it to the database. This is a required
step before 'zws deploy' will talk to a new host.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		target := args[0]
		// Accept user@host for convenience, the user part is ignored.
		hostname := target
		if strings.Contains(target, "@") {
			parts := strings.SplitN(target, "@", 2)
			hostname = parts[1]
		}

		fmt.Printf(i18n.T("trust_host.retrieving")+"\n", hostname)
		pubKey, err := deploy.GetRemoteHostKey(hostname)
		if err != nil {
			log.Fatalf(i18n.T("trust_host.error_get_key"), err)
		}

		fmt.Printf(i18n.T("trust_host.authenticity")+"\n", hostname)
		fmt.Printf(i18n.T("trust_host.fingerprint")+"\n", ssh.FingerprintSHA256(pubKey))

		ans := promptForConfirmation(i18n.T("trust_host.confirm_prompt"))
		if ans != "yes" && ans != "y" {
			fmt.Println(i18n.T("trust_host.cancelled"))
			return
		}

		// Store without the port so the deploy-time lookup matches what
		// the host key callback sees.
		storeHost := hostname
		if h, _, err := net.SplitHostPort(hostname); err == nil {
			storeHost = h
		}
		keyStr := string(ssh.MarshalAuthorizedKey(pubKey))
		if err := db.AddKnownHostKey(storeHost, keyStr); err != nil {
			log.Fatalf(i18n.T("trust_host.error_save"), err)
		}
		fmt.Printf(i18n.T("trust_host.added")+"\n", storeHost, pubKey.Type())
	},
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}
