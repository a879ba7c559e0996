// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for ZWS.
//
// Usage:
//
//	go run . [flags]
//	./zws [flags]
//
// This launches the ZWS CLI. See --help for options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/zuhairmbj123/zws/ui/cli"
)

// version is set at build time using -ldflags, e.g.:
// go build -ldflags "-X main.version=1.2.3"
var version = "dev"

// main is the entrypoint for the ZWS CLI.
func main() {
	if os.Getenv("ZWS_SHOW_VERSION") == "1" {
		fmt.Fprintf(os.Stderr, "ZWS version: %s\n", version)
	}

	if err := cli.Execute(); err != nil {
		log.Printf("ZWS CLI error: %v", err)
		os.Exit(1)
	}
}
