package schemafile

// Document is one YAML/JSON schema file (or one document of a stream).
type Document struct {
	Kinds   []KindSpec   `yaml:"kinds"`
	Schemas []SchemaSpec `yaml:"schemas"`
}

// KindSpec declares a custom field kind. Type, when set, registers a
// default descriptor for the kind (a primitive name such as "decimal");
// otherwise the kind resolves through its bases.
type KindSpec struct {
	Name  string   `yaml:"name"`
	Bases []string `yaml:"bases"`
	Type  string   `yaml:"type"`
}

// SchemaSpec declares one schema class.
type SchemaSpec struct {
	Name    string      `yaml:"name"`
	Extends []string    `yaml:"extends"`
	Exclude []string    `yaml:"exclude"`
	Unknown string      `yaml:"unknown"`
	Fields  []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one field. Container kinds use inner (List), items
// (Tuple), keys/values (Dict, Mapping) and nested/many/pluck (Nested, Pluck).
type FieldSpec struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"`
	Required    bool        `yaml:"required"`
	AllowNone   bool        `yaml:"allow_none"`
	LoadOnly    bool        `yaml:"load_only"`
	DumpOnly    bool        `yaml:"dump_only"`
	Default     any         `yaml:"default"`
	Description string      `yaml:"description"`
	Inner       *FieldSpec  `yaml:"inner"`
	Items       []FieldSpec `yaml:"items"`
	Keys        *FieldSpec  `yaml:"keys"`
	Values      *FieldSpec  `yaml:"values"`
	Nested      string      `yaml:"nested"`
	Many        bool        `yaml:"many"`
	Pluck       string      `yaml:"pluck"`
	Enum        []string    `yaml:"enum"`
}
