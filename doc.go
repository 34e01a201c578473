// Package main provides the iosdeploy CLI for resolving iOS deployment
// targets and synthesizing Xcode build configuration.
//
// For the library API, see the subpackages:
//
//	import "iosdeploy/pkg/device"  // device/simulator resolution
//	import "iosdeploy/pkg/config"  // build configuration synthesis
//	import "iosdeploy/pkg/bundle"  // plist merging, framework inspection
//	import "iosdeploy/pkg/signing" // signing mode resolution
package main
