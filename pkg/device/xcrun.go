package device

import (
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/tidwall/gjson"
)

// XCRunLister enumerates targets through the xcrun tooling: physical
// devices via `xctrace list devices`, simulators via `simctl list`.
type XCRunLister struct{}

func (XCRunLister) Devices() ([]Candidate, error) {
	out, err := exec.Command("xcrun", "xctrace", "list", "devices").Output()
	if err != nil {
		return nil, fmt.Errorf("xctrace list devices: %w", err)
	}
	return parseXCTraceDevices(string(out)), nil
}

func (XCRunLister) Simulators() ([]Candidate, error) {
	out, err := exec.Command("xcrun", "simctl", "list", "--json", "devices", "available").Output()
	if err != nil {
		return nil, fmt.Errorf("simctl list: %w", err)
	}
	return parseSimctlList(out), nil
}

// xctrace prints section headers ("== Devices ==", "== Simulators ==")
// followed by lines of the form "Name (17.0) (00008110-...)". Only the
// physical-device section is kept; the host machine line carries no OS
// version and is skipped.
var xctraceDeviceRe = regexp.MustCompile(`^(.+) \(([0-9.]+)\) \(([0-9A-Fa-f-]+)\)$`)

func parseXCTraceDevices(out string) []Candidate {
	var devices []Candidate
	inDevices := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "== ") {
			inDevices = line == "== Devices =="
			continue
		}
		if !inDevices || line == "" {
			continue
		}
		m := xctraceDeviceRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		devices = append(devices, Candidate{
			ID:     m[3],
			Name:   m[1],
			Arch:   "arm64-apple-ios",
			Kind:   Physical,
			Booted: true,
		})
	}
	return devices
}

// parseSimctlList decodes `simctl list --json devices available` output.
// The devices map is keyed by runtime identifier; only iOS runtimes are
// kept.
func parseSimctlList(out []byte) []Candidate {
	var simulators []Candidate
	gjson.GetBytes(out, "devices").ForEach(func(runtimeID, devs gjson.Result) bool {
		if !strings.Contains(runtimeID.String(), "iOS") {
			return true
		}
		devs.ForEach(func(_, d gjson.Result) bool {
			if !d.Get("isAvailable").Bool() {
				return true
			}
			simulators = append(simulators, Candidate{
				ID:     d.Get("udid").String(),
				Name:   d.Get("name").String(),
				Arch:   simulatorArch(),
				Kind:   Simulator,
				Booted: d.Get("state").String() == "Booted",
			})
			return true
		})
		return true
	})
	return simulators
}

// simulatorArch is the target triple for simulators on the host machine.
func simulatorArch() string {
	if runtime.GOARCH == "arm64" {
		return "arm64-apple-ios-sim"
	}
	return "x86_64-apple-ios"
}

// XCRunStarter boots simulators with `simctl boot`, which returns as soon
// as the boot request is accepted.
type XCRunStarter struct{}

func (XCRunStarter) Start(c Candidate) error {
	out, err := exec.Command("xcrun", "simctl", "boot", c.ID).CombinedOutput()
	if err != nil {
		return fmt.Errorf("simctl boot %s: %w (%s)", c.ID, err, strings.TrimSpace(string(out)))
	}
	return nil
}
