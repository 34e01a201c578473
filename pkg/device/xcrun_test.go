package device

import "testing"

const simctlSample = `{
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.iOS-17-0": [
      {
        "udid": "AAAA-1111",
        "isAvailable": true,
        "state": "Shutdown",
        "name": "iPhone 15"
      },
      {
        "udid": "BBBB-2222",
        "isAvailable": true,
        "state": "Booted",
        "name": "iPad Air (5th generation)"
      },
      {
        "udid": "CCCC-3333",
        "isAvailable": false,
        "state": "Shutdown",
        "name": "iPhone 12"
      }
    ],
    "com.apple.CoreSimulator.SimRuntime.watchOS-10-0": [
      {
        "udid": "DDDD-4444",
        "isAvailable": true,
        "state": "Shutdown",
        "name": "Apple Watch Series 9"
      }
    ]
  }
}`

func TestParseSimctlList(t *testing.T) {
	simulators := parseSimctlList([]byte(simctlSample))
	if len(simulators) != 2 {
		t.Fatalf("expected 2 available iOS simulators, got %d: %v", len(simulators), simulators)
	}
	if simulators[0].ID != "AAAA-1111" || simulators[0].Name != "iPhone 15" {
		t.Errorf("unexpected first simulator: %+v", simulators[0])
	}
	if simulators[0].Booted {
		t.Error("shutdown simulator reported as booted")
	}
	if !simulators[1].Booted {
		t.Error("booted simulator not reported as booted")
	}
	for _, s := range simulators {
		if s.Kind != Simulator {
			t.Errorf("simulator %s has kind %v", s.Name, s.Kind)
		}
	}
}

const xctraceSample = `== Devices ==
Build Host (ABCDEF01-2345-6789-ABCD-EF0123456789)
Janes iPhone (17.0) (00008110-000A1B2C3D4E5F)

== Simulators ==
iPhone 15 (17.0) (AAAA-1111)
`

func TestParseXCTraceDevices(t *testing.T) {
	devices := parseXCTraceDevices(xctraceSample)
	if len(devices) != 1 {
		t.Fatalf("expected 1 physical device, got %d: %v", len(devices), devices)
	}
	d := devices[0]
	if d.Name != "Janes iPhone" {
		t.Errorf("unexpected device name %q", d.Name)
	}
	if d.ID != "00008110-000A1B2C3D4E5F" {
		t.Errorf("unexpected device id %q", d.ID)
	}
	if d.Kind != Physical {
		t.Errorf("unexpected kind %v", d.Kind)
	}
}
