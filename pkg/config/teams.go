package config

import (
	"os/exec"
	"regexp"
)

// FindDevelopmentTeams queries the local keychain for code signing
// identities via `security find-identity`. The query never fails fatally:
// any error yields an empty list.
func FindDevelopmentTeams() []Team {
	out, err := exec.Command("security", "find-identity", "-v", "-p", "codesigning").Output()
	if err != nil {
		return nil
	}
	return parseIdentities(string(out))
}

// find-identity lines look like:
//
//	1) A1B2C3... "Apple Development: Jane Doe (TEAM123456)"
var identityRe = regexp.MustCompile(`"([^"]+) \(([A-Z0-9]{10})\)"`)

func parseIdentities(out string) []Team {
	var teams []Team
	seen := make(map[string]bool)
	for _, m := range identityRe.FindAllStringSubmatch(out, -1) {
		if seen[m[2]] {
			continue
		}
		seen[m[2]] = true
		teams = append(teams, Team{Name: m[1], ID: m[2]})
	}
	return teams
}
