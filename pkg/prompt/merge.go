package prompt

// mergedEntry is a prompt in the merged view together with the collection
// it was read from.
type mergedEntry struct {
	prompt Prompt
	origin Scope
}

func mergeEntries(global, project []Prompt) []mergedEntry {
	index := make(map[string]int, len(global)+len(project))
	out := make([]mergedEntry, 0, len(global)+len(project))

	add := func(p Prompt, origin Scope) {
		if i, ok := index[p.Name]; ok {
			out[i] = mergedEntry{prompt: p, origin: origin}
			return
		}
		index[p.Name] = len(out)
		out = append(out, mergedEntry{prompt: p, origin: origin})
	}

	for _, p := range global {
		add(p, ScopeGlobal)
	}
	for _, p := range project {
		add(p, ScopeProject)
	}
	return out
}

// Merge combines a global and a project collection keyed by name. Later
// entries replace earlier ones in place, so project prompts win and the
// position of a name is where it was first seen.
func Merge(global, project []Prompt) []Prompt {
	entries := mergeEntries(global, project)
	out := make([]Prompt, len(entries))
	for i, e := range entries {
		out[i] = e.prompt
	}
	return out
}
