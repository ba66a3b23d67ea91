package exercises

import "strings"

// NormalizeEquipmentTags flattens filter input into a flat list of tags.
// Clients sometimes send a single CSV string instead of repeating the
// parameter, so every entry is split on commas, trimmed, and empty
// fragments are dropped. Duplicates are tolerated.
func NormalizeEquipmentTags(entries []string) []string {
	var tags []string
	for _, entry := range entries {
		for _, fragment := range strings.Split(entry, ",") {
			if tag := strings.TrimSpace(fragment); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// equipmentToList normalizes the persisted equipment column into the list
// shape the API exposes: null becomes an empty list, a comma-joined legacy
// value is split into trimmed tokens, a plain scalar becomes a one-element
// list.
func equipmentToList(stored *string) []string {
	if stored == nil || *stored == "" {
		return []string{}
	}
	if strings.Contains(*stored, ",") {
		return NormalizeEquipmentTags([]string{*stored})
	}
	return []string{*stored}
}
