// Package device resolves the deployment target for an iOS app: a
// connected physical device when one is available, otherwise a simulator.
package device

// Kind distinguishes physical devices from simulators.
type Kind int

const (
	Physical Kind = iota
	Simulator
)

func (k Kind) String() string {
	if k == Physical {
		return "device"
	}
	return "simulator"
}

// Candidate is a deployment target discovered on the local machine.
// Candidates are enumerated fresh on every resolution call and never
// cached.
type Candidate struct {
	ID     string // UDID
	Name   string // display name, e.g. "iPhone 15 Pro"
	Arch   string // target triple, e.g. "arm64-apple-ios"
	Kind   Kind
	Booted bool // simulators: already running; devices: connected
}

// Lister enumerates deployment target candidates. Enumeration may fail
// with a tooling error; an empty list is not an error.
type Lister interface {
	Devices() ([]Candidate, error)
	Simulators() ([]Candidate, error)
}

// Starter boots a simulator detached, returning once the boot request has
// been handed to the tooling.
type Starter interface {
	Start(c Candidate) error
}

// Prompter asks the user to pick one item from a list and returns the
// selected index. kind labels the item type ("device", "simulator").
type Prompter interface {
	Choose(title string, items []string, kind string) (int, error)
}
