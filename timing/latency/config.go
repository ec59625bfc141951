// Package latency provides the per-opcode execution latency table the
// Tomasulo engine's reservation stations and load/store buffer dispatch
// against (spec.md §4.D, §4.E).
package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the cycle counts for every opcode. Values are loaded from
// JSON the same way the teacher's TimingConfig is (timing/latency/config.go
// in the reference corpus); cmd/tomasulo layers viper over this for
// flags/env/hot-reload (SPEC_FULL.md §2.2).
type Config struct {
	// ADDLatency is the execute-stage latency for ADD. Default: 2.
	ADDLatency uint64 `json:"add_latency" mapstructure:"add_latency"`
	// SUBLatency is the execute-stage latency for SUB. Default: 2.
	SUBLatency uint64 `json:"sub_latency" mapstructure:"sub_latency"`
	// MULLatency is the execute-stage latency for MUL. Default: 4.
	MULLatency uint64 `json:"mul_latency" mapstructure:"mul_latency"`
	// DIVLatency is the execute-stage latency for DIV. Default: 6.
	DIVLatency uint64 `json:"div_latency" mapstructure:"div_latency"`
	// BEQLatency is the execute-stage latency for BEQ. Default: 1.
	BEQLatency uint64 `json:"beq_latency" mapstructure:"beq_latency"`
	// LWLatency is the memory-stage latency for a load once dispatched.
	// Default: 3.
	LWLatency uint64 `json:"lw_latency" mapstructure:"lw_latency"`
	// SWLatency is the staging latency for a store before it becomes
	// eligible to commit. Default: 2.
	SWLatency uint64 `json:"sw_latency" mapstructure:"sw_latency"`
}

// DefaultConfig returns the latencies specified by spec.md §4.D/§4.E.
func DefaultConfig() *Config {
	return &Config{
		ADDLatency: 2,
		SUBLatency: 2,
		MULLatency: 4,
		DIVLatency: 6,
		BEQLatency: 1,
		LWLatency:  3,
		SWLatency:  2,
	}
}

// LoadConfig loads a Config from a JSON file, falling back to
// DefaultConfig's values for any field the file omits.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read latency config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse latency config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize latency config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that every latency is strictly positive.
func (c *Config) Validate() error {
	fields := map[string]uint64{
		"add_latency": c.ADDLatency,
		"sub_latency": c.SUBLatency,
		"mul_latency": c.MULLatency,
		"div_latency": c.DIVLatency,
		"beq_latency": c.BEQLatency,
		"lw_latency":  c.LWLatency,
		"sw_latency":  c.SWLatency,
	}
	for name, v := range fields {
		if v == 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
