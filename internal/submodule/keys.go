package submodule

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultKeyPrefix is the env key prefix used when none is configured.
const DefaultKeyPrefix = "SGM"

const keySuffix = "_URL"

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// sanitize uppercases name and collapses runs of non-alphanumerics into "_".
func sanitize(name string) string {
	s := strings.Trim(nonAlnum.ReplaceAllString(name, "_"), "_")
	if s == "" {
		s = "SUBMODULE"
	}
	return strings.ToUpper(s)
}

// EnvKey derives the natural env key for a submodule name,
// e.g. EnvKey("SGM", "my-repo") → "SGM_MY_REPO_URL".
// Distinct names may share a natural key; use KeyTable to assign keys for a run.
func EnvKey(prefix, name string) string {
	return prefix + "_" + sanitize(name) + keySuffix
}

// Collision records a submodule whose natural key was already claimed by an
// earlier entry and therefore received a disambiguated key.
type Collision struct {
	Name     string // submodule that was renamed
	Natural  string // key it would have had
	Assigned string // key it received
	Holder   string // earlier submodule holding the natural key
}

func (c Collision) String() string {
	return fmt.Sprintf("%s: %s is already used by %s, using %s", c.Name, c.Natural, c.Holder, c.Assigned)
}

// KeyTable holds the env keys for one ordered list of entries. Keys are
// assigned once, in registration order, and are unique within the table: the
// first claimant keeps its natural key and later ones get the smallest free
// numeric suffix (SGM_REPO_2_URL, SGM_REPO_3_URL, ...).
type KeyTable struct {
	prefix     string
	entries    []Entry
	keys       []string
	collisions []Collision
}

// NewKeyTable assigns keys for entries using prefix (DefaultKeyPrefix when empty).
func NewKeyTable(prefix string, entries []Entry) *KeyTable {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	t := &KeyTable{
		prefix:  prefix,
		entries: append([]Entry(nil), entries...),
		keys:    make([]string, len(entries)),
	}

	holders := make(map[string]string, len(entries))
	for i, e := range entries {
		natural := EnvKey(prefix, e.Name)
		key := natural
		if _, taken := holders[key]; taken {
			base := prefix + "_" + sanitize(e.Name)
			for n := 2; ; n++ {
				key = fmt.Sprintf("%s_%d%s", base, n, keySuffix)
				if _, taken := holders[key]; !taken {
					break
				}
			}
			t.collisions = append(t.collisions, Collision{
				Name:     e.Name,
				Natural:  natural,
				Assigned: key,
				Holder:   holders[natural],
			})
		}
		holders[key] = e.Name
		t.keys[i] = key
	}
	return t
}

// Prefix returns the key prefix the table was built with.
func (t *KeyTable) Prefix() string { return t.prefix }

// Len returns the number of entries.
func (t *KeyTable) Len() int { return len(t.entries) }

// Entry returns the i-th entry.
func (t *KeyTable) Entry(i int) Entry { return t.entries[i] }

// KeyAt returns the key assigned to the i-th entry.
func (t *KeyTable) KeyAt(i int) string { return t.keys[i] }

// Keys returns all keys in registration order.
func (t *KeyTable) Keys() []string { return append([]string(nil), t.keys...) }

// Collisions returns the entries that received a disambiguated key.
func (t *KeyTable) Collisions() []Collision { return t.collisions }

// Lookup returns the key for the first entry named name.
func (t *KeyTable) Lookup(name string) (string, bool) {
	for i, e := range t.entries {
		if e.Name == name {
			return t.keys[i], true
		}
	}
	return "", false
}
