// Package cli holds the pieces shared by the ng command-line tools: version
// information, logging, configuration, diagnostics and terminal handling.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
)

// Version information for all CLI tools
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-16"
)

// CommitSHA is set at build time with -ldflags "-X".
var CommitSHA = "unknown"

// VersionInfo contains version and build information
type VersionInfo struct {
	Version         string `json:"version"`
	LanguageVersion string `json:"language_version"`
	BuildDate       string `json:"build_date"`
	CommitSHA       string `json:"commit_sha"`
	GoVersion       string `json:"go_version"`
	Platform        string `json:"platform"`
	Arch            string `json:"arch"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo(languageVersion string) *VersionInfo {
	return &VersionInfo{
		Version:         Version,
		LanguageVersion: languageVersion,
		BuildDate:       BuildDate,
		CommitSHA:       CommitSHA,
		GoVersion:       runtime.Version(),
		Platform:        runtime.GOOS,
		Arch:            runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format
func PrintVersion(w io.Writer, toolName string, info *VersionInfo, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s v%s\n", toolName, info.Version)
	fmt.Fprintf(w, "Language: %s\n", info.LanguageVersion)
	fmt.Fprintf(w, "Build Date: %s\n", info.BuildDate)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Fprintf(w, "Commit: %s\n", info.CommitSHA)
	}
	fmt.Fprintf(w, "Go Version: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s/%s\n", info.Platform, info.Arch)
	return err
}

// ErrReported marks an error whose diagnostic has already been written.
var ErrReported = errors.New("errors reported")

// ReportError writes err through logger, or to w when no logger has been
// built yet. Nil and ErrReported errors are not written.
func ReportError(w io.Writer, err error, logger *Logger) {
	if err == nil || errors.Is(err, ErrReported) {
		return
	}
	if logger != nil {
		logger.Error("%v", err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// HandleError reports err and exits with status 1. A nil err is ignored.
func HandleError(err error, logger *Logger) {
	if err == nil {
		return
	}
	ReportError(os.Stderr, err, logger)
	os.Exit(1)
}
