package swap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// MainFilePrefix names the generated main table file; it is never read as a regular source.
const MainFilePrefix = "MainFormSwap"

// sourceFile is the on-disk layout of a swap file:
//
//	forms:
//	  "0x0001A2B3": "0x0002C3D4"
//	land_textures: {}
//	texture_sets: {}
type sourceFile struct {
	Forms        map[string]string `yaml:"forms"`
	LandTextures map[string]string `yaml:"land_textures"`
	TextureSets  map[string]string `yaml:"texture_sets"`
}

// ParseSource decodes one swap file. Entries that fail to parse are reported together; valid
// entries are still returned.
func ParseSource(name string, raw []byte) (Source, error) {
	src := Source{Name: name}

	var f sourceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return src, fmt.Errorf("%s: %w", name, err)
	}

	var errs []error
	for k, m := range [kindCount]map[string]string{f.Forms, f.LandTextures, f.TextureSets} {
		src.Entries[k] = make(map[ResourceID]ResourceID, len(m))
		for o, r := range m {
			orig, err := ParseResourceID(o)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", name, Kind(k), err))
				continue
			}
			repl, err := ParseResourceID(r)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s %s %s: %w", name, Kind(k), orig, err))
				continue
			}
			src.Entries[k][orig] = repl
		}
	}

	return src, errors.Join(errs...)
}

// LoadSources reads every swap file in dir whose name carries "_<suffix>" and returns them in
// lexicographic file-name order, which is also the merge order. A missing directory or no
// matching files is not an error; the season simply has no swaps.
func LoadSources(dir, suffix string, logger *zap.SugaredLogger) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnf("swap directory %s does not exist, skipping %s swaps", dir, suffix)
			return nil, nil
		}
		return nil, fmt.Errorf("reading swap directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isSourceFile(e.Name(), suffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		logger.Warnf("no swap files with _%s suffix found in %s, skipping %s swaps", suffix, dir, suffix)
		return nil, nil
	}
	logger.Infof("%d matching %s swap files found", len(names), suffix)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Errorf("couldn't read swap file %s: %v", path, err)
			continue
		}
		src, err := ParseSource(name, raw)
		if err != nil {
			logger.Warnf("swap file %s: %v", path, err)
		}
		logger.Debugf("swap file %s: %d entries", name, src.Len())
		sources = append(sources, src)
	}

	return sources, nil
}

func isSourceFile(name, suffix string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	if strings.HasPrefix(name, MainFilePrefix) {
		return false
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Contains(strings.ToUpper(base), "_"+strings.ToUpper(suffix))
}

// candidateFile is the layout of the main generation input:
//
//	packages: [Skyrim.esm, Update.esm]
//	candidates:
//	  "0x0001A2B3": "0x0002C3D4"
type candidateFile struct {
	Packages   []string          `yaml:"packages"`
	Candidates map[string]string `yaml:"candidates"`
}

// LoadCandidates reads the generation input. packages is the number of installed content
// packages listed in the file, used to detect a changed load order.
func LoadCandidates(path string) (candidates []Candidate, packages int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	var f candidateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	keys := make([]string, 0, len(f.Candidates))
	for k := range f.Candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		orig, err := ParseResourceID(k)
		if err != nil {
			return nil, 0, err
		}
		var repl ResourceID
		if v := strings.TrimSpace(f.Candidates[k]); v != "" {
			if repl, err = ParseResourceID(v); err != nil {
				return nil, 0, err
			}
		}
		candidates = append(candidates, Candidate{Original: orig, Replacement: repl})
	}

	return candidates, len(f.Packages), nil
}
