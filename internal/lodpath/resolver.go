package lodpath

import (
	"errors"
	"fmt"
)

var (
	// ErrPathTooLong is returned instead of a truncated name.
	ErrPathTooLong = errors.New("lod path exceeds maximum length")
	// ErrBufferTooSmall is returned by BuildPathInto when the name and its terminator do not fit.
	ErrBufferTooSmall = errors.New("lod path does not fit the destination buffer")
)

// SeasonSource reports whether LOD of the given type should use seasonal names and, if so, the
// season suffix to insert.
type SeasonSource interface {
	CanSwapLOD(t LODType) (ok bool, suffix string)
}

// SeasonSourceFunc adapts a function to SeasonSource.
type SeasonSourceFunc func(t LODType) (bool, string)

func (f SeasonSourceFunc) CanSwapLOD(t LODType) (bool, string) { return f(t) }

// Resolver builds LOD file names.
type Resolver struct {
	seasons SeasonSource
	maxLen  int
	defs    [categoryCount]categoryDef
}

// NewResolver returns a resolver bounded to maxLen bytes per name; maxLen <= 0 selects
// DefaultMaxLen. limits overrides the bound of single categories.
func NewResolver(seasons SeasonSource, maxLen int, limits map[Category]int) *Resolver {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	r := &Resolver{seasons: seasons, maxLen: maxLen, defs: categories}
	for i := range r.defs {
		r.defs[i].maxLen = maxLen
		if n := limits[Category(i)]; n > 0 {
			r.defs[i].maxLen = n
		}
	}
	return r
}

// MaxLen returns the default length bound.
func (r *Resolver) MaxLen() int {
	return r.maxLen
}

// CategoryMaxLen returns the length bound applied to names of cat.
func (r *Resolver) CategoryMaxLen(cat Category) int {
	if !cat.valid() {
		return 0
	}
	return r.defs[cat].maxLen
}

// BuildPath returns the seasonal name when the season allows LOD swaps for the category's type,
// otherwise the default name. Passing the wrong number or kind of arguments is a programming
// error and panics.
func (r *Resolver) BuildPath(cat Category, args ...any) (string, error) {
	if !cat.valid() {
		panic(fmt.Sprintf("lodpath: unknown category %d", int(cat)))
	}
	def := r.defs[cat]
	checkArgs(cat, def.arity, args)

	if r.seasons != nil {
		if ok, suffix := r.seasons.CanSwapLOD(def.lod); ok && suffix != "" {
			return bounded(def, fmt.Sprintf(def.seasonal, append(args[:len(args):len(args)], suffix)...))
		}
	}
	return bounded(def, fmt.Sprintf(def.fallback, args...))
}

// DefaultPath returns the season-agnostic name regardless of the current season.
func (r *Resolver) DefaultPath(cat Category, args ...any) (string, error) {
	if !cat.valid() {
		panic(fmt.Sprintf("lodpath: unknown category %d", int(cat)))
	}
	def := r.defs[cat]
	checkArgs(cat, def.arity, args)
	return bounded(def, fmt.Sprintf(def.fallback, args...))
}

// CellPath is the typed form of BuildPath for cell categories.
func (r *Resolver) CellPath(cat Category, worldSpace string, x, y int16, scale uint32) (string, error) {
	return r.BuildPath(cat, worldSpace, x, y, scale)
}

// WorldPath is the typed form of BuildPath for world categories.
func (r *Resolver) WorldPath(cat Category, worldSpace string) (string, error) {
	return r.BuildPath(cat, worldSpace)
}

// BuildPathInto writes the name followed by a NUL byte into dst, the way the host's fixed
// buffers expect, and returns the name length. Nothing is written when it does not fit.
func (r *Resolver) BuildPathInto(dst []byte, cat Category, args ...any) (int, error) {
	p, err := r.BuildPath(cat, args...)
	if err != nil {
		return 0, err
	}
	if len(p)+1 > len(dst) {
		return 0, fmt.Errorf("%s needs %d bytes, have %d: %w", cat, len(p)+1, len(dst), ErrBufferTooSmall)
	}
	n := copy(dst, p)
	dst[n] = 0
	return n, nil
}

func bounded(def categoryDef, p string) (string, error) {
	if len(p) > def.maxLen {
		return "", fmt.Errorf("%s: %d > %d bytes: %w", def.name, len(p), def.maxLen, ErrPathTooLong)
	}
	return p, nil
}

func checkArgs(cat Category, arity int, args []any) {
	if len(args) != arity {
		panic(fmt.Sprintf("lodpath: %s takes %d arguments, got %d", cat, arity, len(args)))
	}
	if _, ok := args[0].(string); !ok {
		panic(fmt.Sprintf("lodpath: %s world space must be a string, got %T", cat, args[0]))
	}
	for i, a := range args[1:] {
		switch a.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		default:
			panic(fmt.Sprintf("lodpath: %s argument %d must be an integer, got %T", cat, i+2, a))
		}
	}
}
