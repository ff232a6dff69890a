package xlsx2docx

// Field is one named cell value of a Record.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Record is one data row as an insertion-ordered set of fields.
// Values are already coerced to text; "" is the only blank value.
// A Record is immutable: accessors return copies.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a Record from fields in order.
// A repeated name keeps its first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Name]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// RecordFromMap builds a Record from values, ordered by names.
// Names missing from values get "".
func RecordFromMap(names []string, values map[string]string) Record {
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Value: values[n]}
	}
	return NewRecord(fields...)
}

// Get returns the value for name and whether the field exists.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in insertion order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Names returns field names in insertion order.
func (r Record) Names() []string {
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Name
	}
	return out
}

// NonBlankNames returns the names of fields holding a non-blank value.
func (r Record) NonBlankNames() []string {
	var out []string
	for _, f := range r.fields {
		if f.Value != "" {
			out = append(out, f.Name)
		}
	}
	return out
}

// IsEmpty reports whether every value is blank. A record with no fields is empty.
func (r Record) IsEmpty() bool {
	for _, f := range r.fields {
		if f.Value != "" {
			return false
		}
	}
	return true
}

// Map returns the record as a name-to-value map for template engines.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		out[f.Name] = f.Value
	}
	return out
}

// MarshalYAML renders the record as an ordered list of fields.
func (r Record) MarshalYAML() (any, error) {
	return r.Fields(), nil
}
