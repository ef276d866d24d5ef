package keymap

import (
	"fmt"
	"sort"
)

// FromConfig builds the keymap of user overrides for mode from a table of
// key notation to action name, as found under [keys.normal] and
// [keys.visual]. The action "nop" removes a default binding.
func FromConfig(modeName string, table map[string]string) (*Keymap, error) {
	km := NewKeymap("config-" + modeName).ForMode(modeName).WithSource("config")

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		action := table[k]
		if !KnownAction(action) {
			return nil, fmt.Errorf("keys.%s %q: unknown action %q", modeName, k, action)
		}
		b := NewBinding(k, action).WithCategory("User")
		if takesArg(action) {
			b = b.WithArg()
		}
		km.AddBinding(b)
	}

	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keys.%s: %w", modeName, err)
	}
	return km, nil
}
