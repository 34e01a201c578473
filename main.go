package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docopt/docopt-go"
	"github.com/sirupsen/logrus"

	"iosdeploy/pkg/bundle"
	"iosdeploy/pkg/config"
	"iosdeploy/pkg/device"
	"iosdeploy/pkg/signing"
)

const version = "1.0.0"

const usage = `iosdeploy - iOS Deployment Target & Build Configuration Tool

Resolves where an iOS app should be deployed (device or simulator) and how
its Xcode build should be configured (signing team, frameworks, bundle
metadata), reconciling environment variables, the project configuration
file, command-line flags and local system state.

Usage:
  iosdeploy devices
  iosdeploy run [--target=<name>] [--verbose]
  iosdeploy build [--config=<path>] [--name=<app>] [--feature=<flag>]... [--verbose]
  iosdeploy merge --dest=<path> <source>...
  iosdeploy info --profile=<path>
  iosdeploy -h | --help
  iosdeploy --version

Commands:
  devices   List connected devices and available simulators
  run       Resolve a deployment target, booting a simulator if needed
  build     Synthesize the resolved build configuration for this project
  merge     Merge plist overlays into a destination Info.plist
  info      Display information about a provisioning profile

Options:
  --target=<name>       Fuzzy name of the device or simulator to deploy to
  --config=<path>       Project configuration file (or IOSDEPLOY_CONFIG env var)
                        [default: iosdeploy.yaml]
  --name=<app>          App name (defaults to the working directory name)
  --feature=<flag>      Extra feature flag, may be repeated
  --dest=<path>         Destination plist for the merge command
  --profile=<path>      Path to a .mobileprovision file
  --verbose             Enable debug logging
  -h --help             Show this help message
  --version             Show version

Environment Variables:
  IOS_DEVELOPMENT_TEAM      Signing team override (beats the config file)
  IOS_CERTIFICATE           Base64 P12 signing certificate
  IOS_CERTIFICATE_PASSWORD  Password for IOS_CERTIFICATE
  IOS_MOBILE_PROVISION      Base64 provisioning profile
  CI                        Non-empty disables interactive prompts
`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		os.Exit(1)
	}

	if verbose, _ := opts.Bool("--verbose"); verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var runErr error
	switch {
	case command(opts, "devices"):
		runErr = runDevices()
	case command(opts, "run"):
		runErr = runRun(opts)
	case command(opts, "build"):
		runErr = runBuild(opts)
	case command(opts, "merge"):
		runErr = runMerge(opts)
	case command(opts, "info"):
		runErr = runInfo(opts)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func command(opts docopt.Opts, name string) bool {
	selected, _ := opts.Bool(name)
	return selected
}

func newResolver(interactive bool) *device.Resolver {
	return &device.Resolver{
		Lister:         device.XCRunLister{},
		Starter:        device.XCRunStarter{},
		Prompter:       device.StdioPrompter{In: os.Stdin, Out: os.Stdout},
		NonInteractive: !interactive || os.Getenv("CI") != "",
	}
}

func runDevices() error {
	lister := device.XCRunLister{}

	devices, err := lister.Devices()
	if err != nil {
		return err
	}
	fmt.Printf("Connected devices (%d):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  %s  %s  %s\n", d.ID, d.Name, d.Arch)
	}

	simulators, err := lister.Simulators()
	if err != nil {
		return err
	}
	fmt.Printf("Available simulators (%d):\n", len(simulators))
	for _, s := range simulators {
		state := ""
		if s.Booted {
			state = "  (booted)"
		}
		fmt.Printf("  %s  %s  %s%s\n", s.ID, s.Name, s.Arch, state)
	}
	return nil
}

func runRun(opts docopt.Opts) error {
	target, _ := opts.String("--target")

	chosen, err := newResolver(true).Resolve(target)
	if err != nil {
		return err
	}
	fmt.Printf("Resolved %s: %s (%s) with target %s\n", chosen.Kind, chosen.Name, chosen.ID, chosen.Arch)
	return nil
}

func runBuild(opts docopt.Opts) error {
	cfgPath, _ := opts.String("--config")
	if env := os.Getenv("IOSDEPLOY_CONFIG"); cfgPath == "iosdeploy.yaml" && env != "" {
		cfgPath = env
	}

	project, err := config.LoadProject(cfgPath)
	if err != nil {
		return err
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return err
	}
	appName, _ := opts.String("--name")
	if appName == "" {
		appName = filepath.Base(rootDir)
	}
	app := config.App{
		Name:       appName,
		RootDir:    rootDir,
		ProjectDir: filepath.Join(rootDir, "gen", "apple"),
	}

	var features []string
	if raw, ok := opts["--feature"].([]string); ok {
		features = raw
	}

	resolved, err := config.Synthesize(app, project, features, config.OSEnv{}, config.FindDevelopmentTeams)
	if err != nil {
		return err
	}

	cred, profile, err := signing.FromEnv(os.Getenv)
	if err != nil {
		return err
	}
	signConfig := signing.Resolve(cred, profile)

	fmt.Printf("App:              %s\n", resolved.AppName)
	fmt.Printf("Project dir:      %s\n", resolved.ProjectDir)
	fmt.Printf("Development team: %s\n", orUnset(resolved.DevelopmentTeam))
	fmt.Printf("Bundle version:   %s\n", orUnset(resolved.BundleVersion))
	fmt.Printf("Minimum iOS:      %s\n", resolved.IOSVersion)
	fmt.Printf("Features:         %v\n", resolved.Features)
	fmt.Printf("Link frameworks:  %v\n", resolved.Frameworks)
	fmt.Printf("Vendor bundles:   %v\n", resolved.VendorFrameworks)
	fmt.Printf("Signing style:    %s\n", signConfig.Style)
	if signConfig.Identity != "" {
		fmt.Printf("Signing identity: %s\n", signConfig.Identity)
	}
	if signConfig.ProfileUUID != "" {
		fmt.Printf("Profile UUID:     %s\n", signConfig.ProfileUUID)
	}

	// Best-effort arch check of vendor bundles against the target we would
	// deploy to right now.
	if len(resolved.VendorFrameworks) > 0 {
		if chosen, err := newResolver(false).Resolve(""); err == nil {
			bundle.CheckVendorFrameworks(resolved.VendorFrameworks, resolved.ProjectDir, chosen.Arch)
		}
	}
	return nil
}

func runMerge(opts docopt.Opts) error {
	dest, _ := opts.String("--dest")
	paths, _ := opts["<source>"].([]string)

	sources := make([]bundle.Source, len(paths))
	for i, p := range paths {
		sources[i] = bundle.SourceFile(p)
	}
	if err := bundle.MergePlists(sources, dest); err != nil {
		return err
	}
	fmt.Printf("Merged %d source(s) into %s\n", len(sources), dest)
	return nil
}

func runInfo(opts docopt.Opts) error {
	profilePath, _ := opts.String("--profile")

	data, err := os.ReadFile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	profile, err := signing.ParseProfile(data)
	if err != nil {
		return err
	}

	fmt.Println("Provisioning Profile Information")
	fmt.Println("================================")
	fmt.Printf("File:           %s\n", profilePath)
	fmt.Printf("Name:           %s\n", profile.Name)
	fmt.Printf("Team:           %s (%s)\n", profile.TeamName, profile.TeamID())
	fmt.Printf("UUID:           %s\n", profile.UUID)
	fmt.Printf("Created:        %s\n", profile.CreationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Expiration:     %s\n", profile.ExpirationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Expired:        %v\n", profile.IsExpired())
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
