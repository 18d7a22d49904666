package rsakey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Material is the exported Montgomery form of a public key, as produced by
// offline key preparation and consumed by RS256.SetPublicKey.
type Material struct {
	E                int      `yaml:"e" json:"e"`
	N                []uint32 `yaml:"n,flow" json:"n"`
	NInverse         []uint32 `yaml:"n_inverse,flow" json:"n_inverse"`
	FixedPointLength int      `yaml:"fixed_point_length" json:"fixed_point_length"`
}

// Material exports the key fields.
func (k *PreparedKey) Material() Material {
	return Material{
		E:                k.e,
		N:                k.N(),
		NInverse:         k.NInverse(),
		FixedPointLength: k.k,
	}
}

// Prepare validates the material and builds a PreparedKey from it.
func (m Material) Prepare() (*PreparedKey, error) {
	return FromMontgomery(m.E, m.N, m.NInverse, m.FixedPointLength)
}

// MarshalMaterialYAML encodes key material as YAML.
func MarshalMaterialYAML(m Material) ([]byte, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key material: %w", err)
	}
	return out, nil
}

// ParseMaterialYAML decodes YAML key material and prepares the key.
func ParseMaterialYAML(data []byte) (*PreparedKey, error) {
	var m Material
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMaterial, err)
	}
	return m.Prepare()
}

// LoadMaterialFile reads YAML key material from path.
func LoadMaterialFile(path string) (*PreparedKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key material: %w", err)
	}
	return ParseMaterialYAML(data)
}
