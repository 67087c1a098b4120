package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest describes an injector tree and the lookups to run against it.
type Manifest struct {
	Tokens   []TokenSpec    `yaml:"tokens" json:"tokens"`
	Defaults []ProviderSpec `yaml:"defaults" json:"defaults"`
	Scopes   []ScopeSpec    `yaml:"scopes" json:"scopes"`
	Resolve  []ResolveSpec  `yaml:"resolve" json:"resolve"`
}

// TokenSpec declares a token up front. Undeclared names are single tokens.
type TokenSpec struct {
	Name  string `yaml:"name" json:"name"`
	Multi bool   `yaml:"multi" json:"multi"`
}

// ScopeSpec is one injector. A scope without a parent is a root and sees the
// manifest defaults.
type ScopeSpec struct {
	Name      string         `yaml:"name" json:"name"`
	Parent    string         `yaml:"parent" json:"parent"`
	Providers []ProviderSpec `yaml:"providers" json:"providers"`
}

// ProviderSpec binds Token to exactly one of Value, Format, Class or Alias.
//
//   - value:  the literal, as decoded
//   - format: fmt.Sprintf(format, deps...)
//   - class:  a component record named Class holding its deps
//   - alias:  the instance of another token
type ProviderSpec struct {
	Token  string    `yaml:"token" json:"token"`
	Value  any       `yaml:"value" json:"value"`
	Format *string   `yaml:"format" json:"format"`
	Class  string    `yaml:"class" json:"class"`
	Alias  string    `yaml:"alias" json:"alias"`
	Deps   []DepSpec `yaml:"deps" json:"deps"`
}

// DepSpec is a dependency. It decodes from a bare token name or from a
// mapping with token, optional and from.
type DepSpec struct {
	Token    string `yaml:"token" json:"token"`
	Optional bool   `yaml:"optional" json:"optional"`
	From     string `yaml:"from" json:"from"`
}

// ResolveSpec is one lookup printed by the command.
type ResolveSpec struct {
	Scope    string `yaml:"scope" json:"scope"`
	Token    string `yaml:"token" json:"token"`
	Optional bool   `yaml:"optional" json:"optional"`
	From     string `yaml:"from" json:"from"`
}

type depFields DepSpec

// UnmarshalYAML accepts "name" as well as {token: name, ...}.
func (d *DepSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*d = DepSpec{Token: node.Value}
		return nil
	}
	var f depFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	*d = DepSpec(f)
	return nil
}

// UnmarshalJSON accepts "name" as well as {"token": "name", ...}.
func (d *DepSpec) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*d = DepSpec{Token: name}
		return nil
	}
	var f depFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = DepSpec(f)
	return nil
}

// kind names the single provider shape set on p, or "" when none or several are.
func (p ProviderSpec) kind() string {
	var kinds []string
	if p.Value != nil {
		kinds = append(kinds, "value")
	}
	if p.Format != nil {
		kinds = append(kinds, "format")
	}
	if p.Class != "" {
		kinds = append(kinds, "class")
	}
	if p.Alias != "" {
		kinds = append(kinds, "alias")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	m, err := parseManifest(raw, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	return m, nil
}

func parseManifest(raw []byte, isJSON bool) (*Manifest, error) {
	var m Manifest
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	tokens := map[string]bool{}
	for _, t := range m.Tokens {
		if strings.TrimSpace(t.Name) == "" {
			return errors.New("token missing: name")
		}
		if tokens[t.Name] {
			return errors.Errorf("token %q declared twice", t.Name)
		}
		tokens[t.Name] = true
	}

	for i, p := range m.Defaults {
		if err := p.validate(); err != nil {
			return errors.Wrapf(err, "defaults[%d]", i)
		}
	}

	if len(m.Scopes) == 0 {
		return errors.New("manifest must declare at least one scope")
	}
	scopes := map[string]bool{}
	for _, s := range m.Scopes {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New("scope missing: name")
		}
		if scopes[s.Name] {
			return errors.Errorf("scope %q declared twice", s.Name)
		}
		if s.Parent != "" && !scopes[s.Parent] {
			return errors.Errorf("scope %q: parent %q must be declared before it", s.Name, s.Parent)
		}
		scopes[s.Name] = true
		for i, p := range s.Providers {
			if err := p.validate(); err != nil {
				return errors.Wrapf(err, "scope %q providers[%d]", s.Name, i)
			}
		}
	}

	for i, r := range m.Resolve {
		if !scopes[r.Scope] {
			return errors.Errorf("resolve[%d]: unknown scope %q", i, r.Scope)
		}
		if strings.TrimSpace(r.Token) == "" {
			return errors.Errorf("resolve[%d]: missing token", i)
		}
	}
	return nil
}

func (p ProviderSpec) validate() error {
	if strings.TrimSpace(p.Token) == "" {
		return errors.New("provider missing: token")
	}
	kind := p.kind()
	if kind == "" {
		return errors.Errorf("provider %q: set exactly one of value, format, class or alias", p.Token)
	}
	if len(p.Deps) > 0 && (kind == "value" || kind == "alias") {
		return errors.Errorf("provider %q: %s providers take no deps", p.Token, kind)
	}
	for _, d := range p.Deps {
		if strings.TrimSpace(d.Token) == "" {
			return errors.Errorf("provider %q: dep missing token", p.Token)
		}
	}
	return nil
}
