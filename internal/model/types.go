package model

import "fmt"

// EnvMap is an ordered mapping from variable name to value, built by parsing
// the raw text of a .env file.
//
// Order follows the first appearance of each key in the source text. Order
// matters for output stability (e.g. "prompt every key of the baseline"),
// but not for the merge semantics themselves.
//
// An empty string is a valid, present value and is distinct from an absent
// key. Use Get to tell the two apart.
type EnvMap struct {
	keys   []string
	values map[string]string
}

// NewEnvMap creates an empty EnvMap ready for use.
func NewEnvMap() *EnvMap {
	return &EnvMap{values: make(map[string]string)}
}

// Set stores value under name. A key that already exists keeps its original
// position and only has its value replaced.
func (m *EnvMap) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name and whether the key is present.
// A key present with an empty value returns ("", true); an absent key
// returns ("", false).
func (m *EnvMap) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m.values[name]
	return value, ok
}

// Has reports whether name is present, regardless of its value.
func (m *EnvMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Keys returns a copy of the keys in parse order.
func (m *EnvMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of keys.
func (m *EnvMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Question is a single prompt derived from a variable name and the baseline
// EnvMap. Questions are created per run and handed to the prompter.
type Question struct {
	// Name is the variable name the answer will be stored under.
	Name string `json:"name"`

	// Message is the human-readable prompt text ("Value for NAME").
	Message string `json:"message"`

	// Default is the value offered when the user enters nothing.
	// Empty when the baseline has no value for Name or the value is empty.
	Default string `json:"default"`
}

// NewQuestion builds the Question for name with the given default.
func NewQuestion(name, defaultValue string) Question {
	return Question{
		Name:    name,
		Message: fmt.Sprintf("Value for %s", name),
		Default: defaultValue,
	}
}

// AnswerSet maps variable names to the string the user entered, or the
// default they accepted.
type AnswerSet map[string]string

// Change is a single key → new value edit to apply to the .env text.
type Change struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"-" yaml:"-"`
}

// ChangeSet is the ordered subset of answers that differ from the baseline.
// Order follows the prompt order, which also decides the order in which
// new keys are appended to the file.
type ChangeSet []Change

// Names returns the changed variable names in order.
func (c ChangeSet) Names() []string {
	names := make([]string, 0, len(c))
	for _, ch := range c {
		names = append(names, ch.Name)
	}
	return names
}

// Map returns the changes as a name → value map.
func (c ChangeSet) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, ch := range c {
		m[ch.Name] = ch.Value
	}
	return m
}

// Empty reports whether there is nothing to write.
func (c ChangeSet) Empty() bool {
	return len(c) == 0
}
