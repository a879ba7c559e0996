// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/zuhairmbj123/zws/internal/config"
	"github.com/zuhairmbj123/zws/internal/i18n"
)

func TestFindDeployTarget(t *testing.T) {
	targets := []config.DeployConfig{
		{Name: "staging", Host: "staging.acme.example", User: "deploy", RemoteRoot: "/var/www/staging"},
		{Name: "prod", Host: "web1.acme.example", User: "deploy", RemoteRoot: "/var/www/acme", KeyPath: "/home/deploy/.ssh/id_ed25519"},
	}

	t.Run("by name", func(t *testing.T) {
		got, err := findDeployTarget(targets, "prod")
		if err != nil {
			t.Fatalf("findDeployTarget failed: %v", err)
		}
		if got.Host != "web1.acme.example" || got.KeyPath == "" {
			t.Errorf("wrong target: %+v", got)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := findDeployTarget(targets, "nope"); err == nil {
			t.Error("expected an error for unknown target")
		}
	})

	t.Run("ambiguous when name omitted", func(t *testing.T) {
		if _, err := findDeployTarget(targets, ""); err == nil {
			t.Error("expected an error with two targets and no name")
		}
	})

	t.Run("single target needs no name", func(t *testing.T) {
		got, err := findDeployTarget(targets[:1], "")
		if err != nil {
			t.Fatalf("findDeployTarget failed: %v", err)
		}
		if got.Name != "staging" {
			t.Errorf("got %q, want staging", got.Name)
		}
	})

	t.Run("no targets configured", func(t *testing.T) {
		_, err := findDeployTarget(nil, "")
		if err == nil {
			t.Fatal("expected an error with no targets")
		}
		// The message is a translation, not a format string; it must come
		// through verbatim.
		if err.Error() != i18n.T("deploy.error_no_targets") {
			t.Errorf("error = %q, want the deploy.error_no_targets message", err.Error())
		}
	})
}

func TestResolveBuildVersion_MainVersionWins(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "v1.4.0"

	v, _, _ := resolveBuildVersion(info)
	if v != "v1.4.0" {
		t.Errorf("version = %q, want v1.4.0", v)
	}
}

func TestResolveBuildVersion_DevelFallsBackToDeps(t *testing.T) {
	info := &debug.BuildInfo{}
	info.Main.Version = "(devel)"
	info.Deps = []*debug.Module{
		{Path: "github.com/spf13/cobra", Version: "v1.10.1"},
		{Path: "github.com/zuhairmbj123/zws", Version: "v1.2.3"},
	}

	v, _, _ := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3 from dependency entry", v)
	}
}

func TestCompositeVersion_ContainsVersion(t *testing.T) {
	out := compositeVersion()
	if out == "" {
		t.Fatal("empty version string")
	}
	if strings.Contains(out, "()") {
		t.Errorf("malformed version string %q", out)
	}
}
