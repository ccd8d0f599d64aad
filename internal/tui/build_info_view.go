// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, selectID string) string {
	var b strings.Builder

	b.WriteString("Application: klokku-bridge\n")
	b.WriteString("Version: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\nDate: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\nCommit: ")
	b.WriteString(info.BuildCommit())
	b.WriteString("\nControl: ")
	b.WriteString(selectID)

	return renderPage("ABOUT", b.String(), "esc: back")
}
