// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"testing"

	clog "github.com/charmbracelet/log"
)

func TestPackageLoggerInitialized(t *testing.T) {
	if L == nil {
		t.Fatal("package logger is nil")
	}
}

func TestSetDebugTogglesLevel(t *testing.T) {
	SetDebug(true)
	if got := L.GetLevel(); got != clog.DebugLevel {
		t.Errorf("level after SetDebug(true) = %v, want %v", got, clog.DebugLevel)
	}

	SetDebug(false)
	if got := L.GetLevel(); got != clog.InfoLevel {
		t.Errorf("level after SetDebug(false) = %v, want %v", got, clog.InfoLevel)
	}
}
