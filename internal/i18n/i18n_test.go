// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package i18n

import (
	"strings"
	"testing"
)

func TestT_TranslatesKnownID(t *testing.T) {
	Init("en")
	got := T("menu.browse_pages")
	if got == "menu.browse_pages" || got == "" {
		t.Errorf("expected a translation, got %q", got)
	}
}

func TestT_UnknownIDReturnsID(t *testing.T) {
	Init("en")
	if got := T("no.such.message"); got != "no.such.message" {
		t.Errorf("got %q, want the message ID back", got)
	}
}

func TestSetLang_SwitchesLocale(t *testing.T) {
	Init("en")
	en := T("menu.language")
	SetLang("de")
	de := T("menu.language")
	if en == de {
		t.Errorf("expected different strings for en/de, both %q", en)
	}
	SetLang("en")
}

func TestGetAvailableLocales(t *testing.T) {
	locales := GetAvailableLocales()
	if locales["en"] != "English" {
		t.Errorf(`locales["en"] = %q, want English`, locales["en"])
	}
	if locales["de"] != "Deutsch" {
		t.Errorf(`locales["de"] = %q, want Deutsch`, locales["de"])
	}
	for code := range locales {
		if strings.Contains(code, ".yaml") {
			t.Errorf("locale code %q not trimmed", code)
		}
	}
}
