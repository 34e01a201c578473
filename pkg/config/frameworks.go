package config

import (
	"path/filepath"
	"strings"
)

// ClassifyFrameworks splits framework references from the project
// configuration into names to link and vendor bundles to embed:
//
//   - no extension: a system framework name, linked as-is;
//   - .framework: a framework bundle, linked by its file stem;
//   - anything else: a third-party bundle, embedded by a path rewritten
//     relative to the generated project directory.
func ClassifyFrameworks(refs []string, rootDir, projectDir string) (link, vendor []string) {
	for _, ref := range refs {
		ext := filepath.Ext(ref)
		switch ext {
		case "":
			link = append(link, ref)
		case ".framework":
			link = append(link, strings.TrimSuffix(filepath.Base(ref), ext))
		default:
			full := ref
			if !filepath.IsAbs(full) {
				full = filepath.Join(rootDir, ref)
			}
			rel, err := filepath.Rel(projectDir, full)
			if err != nil {
				rel = full
			}
			vendor = append(vendor, rel)
		}
	}
	return link, vendor
}
