// Package prefs resolves user supplied cuisine and category codes to the
// catalog's canonical vocabulary.
package prefs

import "strings"

// Aliases maps a code to a canonical name. Aliases win over normalization.
type Aliases map[string]string

// Mapper resolves codes against a fixed alias table.
type Mapper struct {
	aliases Aliases
}

func NewMapper(aliases Aliases) *Mapper {
	return &Mapper{aliases: aliases}
}

// Code normalizes a canonical name: lowercase, spaces become underscores.
func Code(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Map returns the canonical names the codes resolve to, in code order and
// without duplicates. Unknown codes are dropped; the result may be empty.
func (m *Mapper) Map(codes []string, vocab []string) []string {
	if len(codes) == 0 {
		return nil
	}

	lookup := make(map[string]string, len(vocab)+len(m.aliases))
	known := make(map[string]bool, len(vocab))
	for _, name := range vocab {
		lookup[Code(name)] = name
		known[name] = true
	}
	// one alias table covers both axes; skip targets outside this vocabulary
	for code, name := range m.aliases {
		if known[name] {
			lookup[Code(code)] = name
		}
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range codes {
		name, ok := lookup[Code(c)]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Cuisines maps cuisine codes.
func (m *Mapper) Cuisines(codes []string) []string {
	return m.Map(codes, Cuisines)
}

// Categories maps restaurant category codes.
func (m *Mapper) Categories(codes []string) []string {
	return m.Map(codes, Categories)
}
