package models

// Field is a single input of a sign-up form.
type Field struct {
	ID          string         `yaml:"id" json:"id"`
	Type        string         `yaml:"type,omitempty" json:"type,omitempty"`
	Label       string         `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder string         `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Note        string         `yaml:"note,omitempty" json:"note,omitempty"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Options     []string       `yaml:"options,omitempty" json:"options,omitempty"`
	Extra       map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// FormDefinition is a form ready for rendering.
type FormDefinition struct {
	Title  string         `yaml:"title,omitempty" json:"title,omitempty"`
	Intro  string         `yaml:"intro,omitempty" json:"intro,omitempty"`
	Submit string         `yaml:"submit,omitempty" json:"submit,omitempty"`
	Fields []Field        `yaml:"fields" json:"fields"`
	Extra  map[string]any `yaml:",inline" json:"extra,omitempty"`
}
