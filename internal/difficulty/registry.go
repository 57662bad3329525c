package difficulty

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownDifficulty is returned for keys outside easy, medium and hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

//go:embed difficulties.yaml
var builtinYAML []byte

// Registry maps difficulty keys to profiles. It is never mutated after construction.
type Registry struct {
	profiles map[Key]Profile
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := parse(builtinYAML, nil)
		if err != nil {
			panic(fmt.Sprintf("difficulty: invalid built-in table: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Get returns the profile for key.
func (r *Registry) Get(key string) (Profile, error) {
	p, ok := r.profiles[Key(key)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, key)
	}
	return p, nil
}

// Keys returns all keys in menu order.
func (r *Registry) Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

// Profiles returns all profiles in menu order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.profiles[k])
	}
	return out
}

// Parse builds a registry from a YAML override document.
// Keys present in data replace the built-in profile, absent keys keep it.
func Parse(data []byte) (*Registry, error) {
	return parse(data, Default())
}

// LoadFile reads a YAML override document from path.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read difficulty file: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Load returns the built-in table when path is empty, else LoadFile(path).
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func parse(data []byte, base *Registry) (*Registry, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse difficulty YAML: %w", err)
	}

	reg := &Registry{profiles: make(map[Key]Profile, len(keys))}
	if base != nil {
		for k, p := range base.profiles {
			reg.profiles[k] = p
		}
	}

	for name, node := range doc {
		key := Key(name)
		if !key.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
		}
		// Fields omitted in the document keep their previous value.
		pf := fileFromProfile(reg.profiles[key])
		if err := node.Decode(&pf); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		p := pf.profile(key)
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		reg.profiles[key] = p
	}

	for _, k := range keys {
		if _, ok := reg.profiles[k]; !ok {
			return nil, fmt.Errorf("profile %q missing", k)
		}
	}
	return reg, nil
}

func validate(p Profile) error {
	switch {
	case p.Label == "":
		return errors.New("label cannot be empty")
	case p.RoundDuration <= 0:
		return fmt.Errorf("round duration must be positive, got %v", p.RoundDuration)
	case p.KillGoal <= 0:
		return fmt.Errorf("kill goal must be positive, got %d", p.KillGoal)
	case p.SpawnInterval <= 0:
		return fmt.Errorf("spawn interval must be positive, got %v", p.SpawnInterval)
	case p.MinVisible <= 0:
		return fmt.Errorf("min visible must be positive, got %v", p.MinVisible)
	case p.MinVisible > p.MaxVisible:
		return fmt.Errorf("min visible %v exceeds max visible %v", p.MinVisible, p.MaxVisible)
	}
	return nil
}
