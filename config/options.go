package config

import (
	"fmt"
	"strconv"
	"strings"
)

// AgentOptions is the typed form of an agent's whitespace-separated
// key=value argument string. Numeric keys are coerced once at parse time;
// unrecognized keys are retained verbatim in Extra.
type AgentOptions struct {
	Name  string
	Role  string
	Seed  uint64
	Alpha float64
	Init  string
	Load  string
	Save  string

	seedSet  bool
	alphaSet bool
	raw      map[string]string
}

// ParseAgentOptions parses args on top of the defaults string; later
// tokens overwrite earlier ones.
func ParseAgentOptions(defaults, args string) (*AgentOptions, error) {
	o := &AgentOptions{raw: make(map[string]string)}
	for _, tok := range strings.Fields(defaults + " " + args) {
		eq := strings.Index(tok, "=")
		if eq < 0 {
			return nil, fmt.Errorf("agent option %q is not key=value", tok)
		}
		if err := o.Set(tok[:eq], tok[eq+1:]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Set stores one key=value pair, coercing the known numeric keys. It is
// also the merge point for the notify protocol.
func (o *AgentOptions) Set(key, value string) error {
	switch key {
	case "name":
		o.Name = value
	case "role":
		o.Role = value
	case "seed":
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("agent option seed=%q: %w", value, err)
		}
		o.Seed = seed
		o.seedSet = true
	case "alpha":
		alpha, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("agent option alpha=%q: %w", value, err)
		}
		o.Alpha = alpha
		o.alphaSet = true
	case "init":
		o.Init = value
	case "load":
		o.Load = value
	case "save":
		o.Save = value
	}
	o.raw[key] = value
	return nil
}

// HasSeed reports whether a seed was explicitly supplied.
func (o *AgentOptions) HasSeed() bool { return o.seedSet }

// HasAlpha reports whether a learning rate was explicitly supplied.
func (o *AgentOptions) HasAlpha() bool { return o.alphaSet }

// Property returns the stored string for key. Fetching a key that was
// never set is an error; callers provide defaults upstream.
func (o *AgentOptions) Property(key string) (string, error) {
	if v, ok := o.raw[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("agent option %q was never set", key)
}
