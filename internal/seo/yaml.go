package seo

import (
	"errors"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a Config document. Only malformed YAML is an error;
// fields of the wrong shape (a scalar where a list is expected, a meta entry
// without an identifying key) are dropped as if they were absent.
func ParseYAML(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	var p plain
	if err := node.Decode(&p); err != nil {
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			return err
		}
	}
	*c = Config(p)
	return nil
}

// UnmarshalYAML accepts the map form {content, name | property | httpEquiv}.
// When several identifying keys are present, name wins over property, which
// wins over httpEquiv.
func (t *MetaTag) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Content       string `yaml:"content"`
		Name          string `yaml:"name"`
		Property      string `yaml:"property"`
		HTTPEquiv     string `yaml:"httpEquiv"`
		HTTPEquivAttr string `yaml:"http-equiv"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch {
	case raw.Name != "":
		*t = NameMeta(raw.Name, raw.Content)
	case raw.Property != "":
		*t = PropertyMeta(raw.Property, raw.Content)
	case raw.HTTPEquiv != "":
		*t = HTTPEquivMeta(raw.HTTPEquiv, raw.Content)
	case raw.HTTPEquivAttr != "":
		*t = HTTPEquivMeta(raw.HTTPEquivAttr, raw.Content)
	default:
		*t = MetaTag{Content: raw.Content}
	}
	return nil
}

func (t MetaTag) MarshalYAML() (any, error) {
	out := map[string]string{"content": t.Content}
	switch t.Kind {
	case MetaName:
		out["name"] = t.Key
	case MetaProperty:
		out["property"] = t.Key
	case MetaHTTPEquiv:
		out["httpEquiv"] = t.Key
	}
	return out, nil
}
