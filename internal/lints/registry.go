package lints

import "sort"

var registry = map[string]Rule{}

func register(rules ...Rule) {
	for _, r := range rules {
		name := r.Meta().Name
		if _, dup := registry[name]; dup {
			panic("lints: duplicate rule " + name)
		}
		registry[name] = r
	}
}

func init() {
	register(
		Alphabetize{},
		Shortcut{},
		SwitchBraces{},
		ImportSpacing{},
		SortImports{},
		ChainedSemi{},
		CallArgumentNewline{},
		PropsDestructuring{},
	)
}

// Names returns the registered rule names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered rule ordered by name.
func All() []Rule {
	names := Names()
	rules := make([]Rule, len(names))
	for i, name := range names {
		rules[i] = registry[name]
	}
	return rules
}

// Lookup returns the rule registered under name.
func Lookup(name string) (Rule, bool) {
	r, ok := registry[name]
	return r, ok
}
