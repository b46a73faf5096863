package snow

import (
	"fmt"

	"github.com/chrissnell/seasonswap/internal/swap"
)

// Action is what the host should do to an object's shader.
type Action uint8

const (
	// Keep leaves the object as it is.
	Keep Action = iota
	// Apply installs the snow shader named in the decision.
	Apply
	// Restore puts back the shader the object had before snow was applied. A zero shader
	// means the object had none and the snow material is removed.
	Restore
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Apply:
		return "apply"
	case Restore:
		return "restore"
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Decision is the outcome of Swapper.Decide.
type Decision struct {
	Action Action          `json:"action"`
	Result SwapResult      `json:"result"`
	Type   Type            `json:"type"`
	Shader swap.ResourceID `json:"shader"`
}

// Shaders names the snow materials installed for each strategy.
type Shaders struct {
	SinglePass swap.ResourceID
	MultiPass  swap.ResourceID
}

func (s Shaders) forType(t Type) swap.ResourceID {
	if t == MultiPass {
		return s.MultiPass
	}
	return s.SinglePass
}

// Swapper combines the gate, the classification cache and the configured shaders.
type Swapper struct {
	gate    *Gate
	cache   *Cache
	shaders Shaders
}

// NewSwapper returns a swapper. A nil cache gets a fresh one.
func NewSwapper(gate *Gate, cache *Cache, shaders Shaders) *Swapper {
	if cache == nil {
		cache = NewCache()
	}
	return &Swapper{gate: gate, cache: cache, shaders: shaders}
}

// Cache returns the classification cache.
func (s *Swapper) Cache() *Cache {
	return s.cache
}

// Decide returns what to do with a static placed by ref. load is only called when the static has
// not been classified yet; a nil scene graph leaves the object untouched.
func (s *Swapper) Decide(st Static, ref Reference, load func() SceneGraph) Decision {
	res := s.gate.CheckStatic(st, ref)
	info, known := s.cache.Get(st.ID())

	switch res {
	case Success:
		if !known {
			if load == nil {
				return Decision{Action: Keep, Result: res}
			}
			node := load()
			if node == nil {
				return Decision{Action: Keep, Result: res}
			}
			material, _ := st.Material()
			info = s.cache.GetOrClassify(st.ID(), material, func() Type { return Classify(node) })
		}
		shader := s.shaders.forType(info.Type)
		if shader == 0 {
			return Decision{Action: Keep, Result: res, Type: info.Type}
		}
		return Decision{Action: Apply, Result: res, Type: info.Type, Shader: shader}

	case SeasonFail, RefFail:
		if known {
			return Decision{Action: Restore, Result: res, Type: info.Type, Shader: info.OriginalShader}
		}
	}
	return Decision{Action: Keep, Result: res}
}

// DecideOther returns what to do with a movable static or container. Those carry no material to
// restore, so the only outcomes are Apply with the single-pass shader or Keep.
func (s *Swapper) DecideOther(ref Reference, base Form) Decision {
	res := s.gate.CheckOther(ref, base)
	if res != Success || s.shaders.SinglePass == 0 {
		return Decision{Action: Keep, Result: res}
	}
	return Decision{Action: Apply, Result: res, Type: SinglePass, Shader: s.shaders.SinglePass}
}
