package engine

import (
	"strconv"
	"strings"

	"github.com/inkwell-docs/inkwell/internal/format"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// The founders group gets extra derived variables because legal documents
// distinguish individual from corporate founders.
const (
	groupFounders  = "founders"
	groupDirectors = "directors"

	typeFieldName   = "type"
	typeCorporation = "corporation"
)

// BuildComputedVars derives the count and flag table from repeating-group
// answers. These entries serve two consumers: rule conditions with
// sourceType "computed", and the variable map itself (merged late, without
// overwriting anything a mapping already set).
//
// Per group: "{name}Count", "hasMultiple{Name}", "hasSingle{Name}".
// For founders additionally: "individualFoundersCount",
// "corporationFoundersCount", "hasIndividualFounder",
// "hasCorporationFounder".
func BuildComputedVars(rs *ir.ResponseSet) map[string]string {
	out := make(map[string]string)
	for _, id := range rs.GroupIDs() {
		group, _ := rs.Group(id)
		n := len(group)
		title := format.FirstUpper(id)

		out[id+"Count"] = strconv.Itoa(n)
		out["hasMultiple"+title] = boolText(n > 1)
		out["hasSingle"+title] = boolText(n == 1)

		if id != groupFounders {
			continue
		}
		individuals := 0
		corporations := 0
		for _, item := range group {
			if isCorporationItem(item) {
				corporations++
			} else {
				individuals++
			}
		}
		out["individualFoundersCount"] = strconv.Itoa(individuals)
		out["corporationFoundersCount"] = strconv.Itoa(corporations)
		out["hasIndividualFounder"] = boolText(individuals > 0)
		out["hasCorporationFounder"] = boolText(corporations > 0)
	}
	return out
}

// isCorporationItem reports whether a group record describes a corporate
// entity. Anything without an explicit corporation type is an individual.
func isCorporationItem(item ir.GroupItem) bool {
	return strings.EqualFold(strings.TrimSpace(item.Field(typeFieldName)), typeCorporation)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
