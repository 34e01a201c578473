package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blacktop/go-macho"
	"github.com/blacktop/go-macho/types"
	"github.com/sirupsen/logrus"
)

// BinaryArches reports the CPU architectures present in a Mach-O binary,
// thin or universal.
func BinaryArches(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary: %w", err)
	}

	if m, err := macho.NewFile(bytes.NewReader(data)); err == nil {
		defer m.Close()
		return []string{archName(m.CPU)}, nil
	}

	fat, err := macho.NewFatFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as a Mach-O binary: %w", path, err)
	}
	defer fat.Close()

	var arches []string
	for _, arch := range fat.Arches {
		arches = append(arches, archName(arch.CPU))
	}
	return arches, nil
}

func archName(cpu types.CPU) string {
	switch cpu {
	case types.CPUArm64:
		return "arm64"
	case types.CPUAmd64:
		return "x86_64"
	default:
		return strings.ToLower(cpu.String())
	}
}

// SupportsArch reports whether the binary at path carries a slice for
// arch. arch may be a full target triple; only the CPU prefix is compared.
func SupportsArch(path, arch string) (bool, error) {
	arches, err := BinaryArches(path)
	if err != nil {
		return false, err
	}
	cpu := cpuOfTriple(arch)
	for _, a := range arches {
		if a == cpu {
			return true, nil
		}
	}
	return false, nil
}

func cpuOfTriple(triple string) string {
	if i := strings.Index(triple, "-"); i > 0 {
		return triple[:i]
	}
	return triple
}

// CheckVendorFrameworks inspects each vendor framework binary and warns
// when one has no slice for the resolved target architecture. Missing or
// unparsable binaries are warned about too; nothing here is fatal since
// the platform toolchain gives the authoritative answer at link time.
func CheckVendorFrameworks(paths []string, projectDir, arch string) {
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(projectDir, p)
		}
		ok, err := SupportsArch(full, arch)
		if err != nil {
			logrus.Warnf("Could not inspect vendor framework %s: %v", p, err)
			continue
		}
		if !ok {
			logrus.Warnf("Vendor framework %s has no %s slice; the build may fail for target %s", p, cpuOfTriple(arch), arch)
		}
	}
}
