package snow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chrissnell/seasonswap/internal/swap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultModelBlacklist are model path fragments that never receive snow.
var DefaultModelBlacklist = []string{`Effects\`, `Sky\`, `lod\`, "WetRocks", "DynDOLOD", "Marker"}

// BlacklistFileTag marks files in the swap directory that carry blacklist entries.
const BlacklistFileTag = "_NOSNOW"

// Blacklist excludes objects by id or by a case-insensitive fragment of their model path. It is
// built once during load and only read afterwards.
type Blacklist struct {
	ids    map[swap.ResourceID]struct{}
	models []string
}

// NewBlacklist builds a blacklist. Model fragments are matched case-insensitively.
func NewBlacklist(ids []swap.ResourceID, models []string) *Blacklist {
	b := &Blacklist{ids: make(map[swap.ResourceID]struct{}, len(ids))}
	for _, id := range ids {
		if id != 0 {
			b.ids[id] = struct{}{}
		}
	}
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		b.models = append(b.models, m)
	}
	return b
}

// Contains reports whether the object is excluded. Objects without a model are excluded too.
func (b *Blacklist) Contains(id swap.ResourceID, model string) bool {
	if _, ok := b.ids[id]; ok {
		return true
	}
	if model == "" {
		return true
	}
	lower := strings.ToLower(model)
	for _, m := range b.models {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Len returns the number of ids and model fragments.
func (b *Blacklist) Len() (ids, models int) {
	return len(b.ids), len(b.models)
}

type blacklistFile struct {
	Blacklist []string `yaml:"blacklist"`
	Models    []string `yaml:"models"`
}

// LoadBlacklistFiles reads every *_NOSNOW yaml file in dir and returns the ids and model
// fragments they list. Unparseable ids are skipped with a warning.
func LoadBlacklistFiles(dir string, logger *zap.SugaredLogger) (ids []swap.ResourceID, models []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading blacklist directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") || !strings.Contains(e.Name(), BlacklistFileTag) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		logger.Warnf("no %s files found in %s, snow shader blacklist is defaults only", BlacklistFileTag, dir)
		return nil, nil, nil
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Errorf("couldn't read blacklist file %s: %v", path, err)
			continue
		}
		var f blacklistFile
		if err := yaml.Unmarshal(raw, &f); err != nil {
			logger.Errorf("couldn't parse blacklist file %s: %v", path, err)
			continue
		}
		for _, v := range f.Blacklist {
			id, err := swap.ParseResourceID(v)
			if err != nil || id == 0 {
				logger.Warnf("blacklist file %s: skipping %q", name, v)
				continue
			}
			ids = append(ids, id)
		}
		models = append(models, f.Models...)
	}

	return ids, models, nil
}
