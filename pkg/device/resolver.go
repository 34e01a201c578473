package device

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"iosdeploy/pkg/match"
)

var (
	// ErrNoMatchingTarget: candidates were enumerated but none cleared the
	// fuzzy-match threshold for the requested name.
	ErrNoMatchingTarget = errors.New("no target matches the requested name")
	// ErrNoTargetAvailable: neither devices nor simulators were found.
	ErrNoTargetAvailable = errors.New("no devices or simulators available")
	// ErrPromptFailed: interactive selection could not be completed.
	ErrPromptFailed = errors.New("target selection prompt failed")
)

// A candidate must score strictly higher than this to be picked by name.
const minMatchScore = 0

// Resolver picks a concrete deployment target. Each Resolve call
// enumerates afresh; the Resolver itself holds no per-call state.
type Resolver struct {
	Lister   Lister
	Starter  Starter
	Prompter Prompter

	// NonInteractive picks the first candidate instead of prompting when
	// several untargeted candidates exist (CI mode).
	NonInteractive bool
}

// Resolve returns the deployment target for the given hint. Connected
// physical devices are preferred; simulators are consulted only when the
// device enumeration comes back empty. A hint that matches nothing against
// a non-empty device list is a hard error, never a silent fallback.
// A resolved simulator that is not yet running is booted before returning.
func (r *Resolver) Resolve(hint string) (Candidate, error) {
	devices, err := r.Lister.Devices()
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to detect connected iOS devices: %w", err)
	}
	if len(devices) > 0 {
		chosen, err := r.pick(devices, hint, "Detected iOS devices", "device")
		if err != nil {
			return Candidate{}, err
		}
		logrus.Infof("Detected connected device: %s with target %s", chosen.Name, chosen.Arch)
		return chosen, nil
	}

	simulators, err := r.Lister.Simulators()
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to detect iOS simulators: %w", err)
	}
	if len(simulators) == 0 {
		return Candidate{}, ErrNoTargetAvailable
	}
	chosen, err := r.pick(simulators, hint, "Detected iOS simulators", "simulator")
	if err != nil {
		return Candidate{}, err
	}
	if !chosen.Booted && r.Starter != nil {
		logrus.Infof("Starting simulator %s", chosen.Name)
		if err := r.Starter.Start(chosen); err != nil {
			return Candidate{}, fmt.Errorf("failed to start simulator %s: %w", chosen.Name, err)
		}
	}
	return chosen, nil
}

// pick selects one candidate from a non-empty list, either by fuzzy name
// match or interactively.
func (r *Resolver) pick(list []Candidate, hint, title, kind string) (Candidate, error) {
	if hint != "" {
		// Scan in reverse keeping strictly greater scores, so that score
		// ties resolve to the candidate enumerated last.
		best, bestScore := -1, -1
		for i := len(list) - 1; i >= 0; i-- {
			if s := match.Score(hint, list[i].Name); s > bestScore {
				best, bestScore = i, s
			}
		}
		if bestScore <= minMatchScore {
			return Candidate{}, fmt.Errorf("could not find an iOS %s matching %q: %w", kind, hint, ErrNoMatchingTarget)
		}
		return list[best], nil
	}

	index := 0
	if len(list) > 1 && !r.NonInteractive {
		names := make([]string, len(list))
		for i, c := range list {
			names[i] = c.Name
		}
		i, err := r.Prompter.Choose(title, names, kind)
		if err != nil {
			return Candidate{}, fmt.Errorf("failed to prompt for iOS %s: %w", kind, errors.Join(ErrPromptFailed, err))
		}
		if i < 0 || i >= len(list) {
			return Candidate{}, fmt.Errorf("%s selection %d out of range: %w", kind, i, ErrPromptFailed)
		}
		index = i
	}
	return list[index], nil
}
