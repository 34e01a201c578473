// Package config synthesizes the resolved build configuration for an iOS
// app from environment overrides, the project configuration file, caller
// feature flags and locally discovered signing identities.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DevelopmentTeamEnvVar overrides every other signing-team source.
	DevelopmentTeamEnvVar = "IOS_DEVELOPMENT_TEAM"

	// TargetIOSVersion is the minimum iOS version stamped into generated
	// projects.
	TargetIOSVersion = "13.0"

	// ProjectPathEnvVar and AppNameEnvVar are the two values exported to
	// the process environment after synthesis, so that later independent
	// invocations (e.g. the Xcode build-phase helper) can locate the
	// generated project without re-deriving it.
	ProjectPathEnvVar = "IOS_PROJECT_PATH"
	AppNameEnvVar     = "IOS_APP_NAME"
)

// App identifies the application being configured.
type App struct {
	Name       string
	RootDir    string // project source root; vendor paths resolve against it
	ProjectDir string // generated Xcode project directory
}

// ProjectConfig is the subset of the project configuration file consulted
// during synthesis.
type ProjectConfig struct {
	Version         string
	DevelopmentTeam string
	Frameworks      []string
	Features        []string
}

// Team is a locally discovered signing identity.
type Team struct {
	Name string
	ID   string
}

// TeamFinder lists locally available signing teams. Implementations never
// fail fatally: a failed query yields an empty list.
type TeamFinder func() []Team

// Env reads and writes process environment variables.
type Env interface {
	Get(key string) string
	Set(key, value string) error
}

// OSEnv is the real process environment.
type OSEnv struct{}

func (OSEnv) Get(key string) string       { return os.Getenv(key) }
func (OSEnv) Set(key, value string) error { return os.Setenv(key, value) }

// Resolved is the synthesized build configuration. Every field is either
// a concrete value or explicitly empty; no partial state leaks
// downstream.
type Resolved struct {
	DevelopmentTeam    string   // empty means unset
	Features           []string // append-only; duplicates preserved
	Frameworks         []string // system/bundled framework names to link
	VendorFrameworks   []string // third-party bundle paths relative to ProjectDir
	BundleVersion      string
	BundleShortVersion string
	IOSVersion         string
	ProjectDir         string
	AppName            string
}

// Exported is the narrow process-wide side channel written after
// synthesis: two environment values, last writer wins, alive for the
// process lifetime.
type Exported struct {
	ProjectDir string
	AppName    string
}

// Apply writes the exported values into env.
func (e Exported) Apply(env Env) error {
	if err := env.Set(ProjectPathEnvVar, e.ProjectDir); err != nil {
		return fmt.Errorf("failed to export %s: %w", ProjectPathEnvVar, err)
	}
	if err := env.Set(AppNameEnvVar, e.AppName); err != nil {
		return fmt.Errorf("failed to export %s: %w", AppNameEnvVar, err)
	}
	return nil
}

// Synthesize merges all configuration sources into one resolved build
// configuration and exports the project path and app name to env.
//
// The signing team comes from the first source that supplies one: the
// environment override, then the project configuration, then a single
// locally discovered identity. With zero or several identities and no
// explicit value the team stays unset and a warning enumerates the
// choices.
//
// Caller feature flags are appended to the project's features without
// deduplication; consumers see duplicates as supplied.
func Synthesize(app App, project ProjectConfig, features []string, env Env, findTeams TeamFinder) (Resolved, error) {
	frameworks, vendorFrameworks := ClassifyFrameworks(project.Frameworks, app.RootDir, app.ProjectDir)

	resolved := Resolved{
		DevelopmentTeam:    resolveTeam(project, env, findTeams),
		Features:           append(append([]string{}, project.Features...), features...),
		Frameworks:         frameworks,
		VendorFrameworks:   vendorFrameworks,
		BundleVersion:      project.Version,
		BundleShortVersion: project.Version,
		IOSVersion:         TargetIOSVersion,
		ProjectDir:         app.ProjectDir,
		AppName:            app.Name,
	}

	exported := Exported{ProjectDir: app.ProjectDir, AppName: app.Name}
	if err := exported.Apply(env); err != nil {
		return Resolved{}, err
	}
	return resolved, nil
}

func resolveTeam(project ProjectConfig, env Env, findTeams TeamFinder) string {
	if team := env.Get(DevelopmentTeamEnvVar); team != "" {
		return team
	}
	if project.DevelopmentTeam != "" {
		return project.DevelopmentTeam
	}

	var teams []Team
	if findTeams != nil {
		teams = findTeams()
	}
	switch len(teams) {
	case 1:
		return teams[0].ID
	case 0:
		logrus.Warnf("No code signing certificates found. You must add one and set the certificate development team ID on the `bundle > ios > developmentTeam` config value or the `%s` environment variable.", DevelopmentTeamEnvVar)
	default:
		names := make([]string, len(teams))
		for i, t := range teams {
			names[i] = fmt.Sprintf("%s (ID: %s)", t.Name, t.ID)
		}
		logrus.Warnf("You must set the code signing certificate development team ID on the `bundle > ios > developmentTeam` config value or the `%s` environment variable. Available certificates: %s", DevelopmentTeamEnvVar, strings.Join(names, ", "))
	}
	return ""
}
