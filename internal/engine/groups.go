package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/inkwell-docs/inkwell/internal/format"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// expandGroups turns every repeating-group answer into its derived
// variables:
//
//   - "{name}Count" and the hasMultiple/hasSingle flags
//   - per-field formatted list aliases: {group}{Field}Formatted (prose
//     "and" join), {group}{Field}List (comma join), {group}{Field}OrList
//   - per-index aliases, 1-based: {singular}{N}{Field}, {Singular}{N}{Field},
//     {group}{N}{Field}
//   - singular aliases referencing the first record: {singular}{Field}
//   - a loop-ready array under the group name, each record carrying its
//     formatted fields plus index/first/last metadata (and, for founders,
//     isCorporation/isIndividual flags)
//   - for founders only, "firstIndividualFounder{Field}" and
//     "firstCorporationFounder{Field}" alias sets
func (t *Transformer) expandGroups(s *runState) {
	for _, groupID := range s.rs.GroupIDs() {
		group, _ := s.rs.Group(groupID)
		t.expandGroup(s, groupID, group)
	}
}

func (t *Transformer) expandGroup(s *runState, groupID string, group ir.Group) {
	title := format.FirstUpper(groupID)
	singular := singularize(groupID)

	s.vars.SetIfAbsent(groupID+"Count", strconv.Itoa(len(group)))
	s.vars.SetIfAbsent("hasMultiple"+title, boolText(len(group) > 1))
	s.vars.SetIfAbsent("hasSingle"+title, boolText(len(group) == 1))

	for _, field := range groupFields(group) {
		fieldTitle := format.FirstUpper(field)

		values := make([]string, 0, len(group))
		for _, item := range group {
			values = append(values, formatGroupField(groupID, item, field))
		}

		s.vars.SetIfAbsent(groupID+fieldTitle+"Formatted", format.JoinAnd(values))
		s.vars.SetIfAbsent(groupID+fieldTitle+"List", format.JoinComma(values))
		s.vars.SetIfAbsent(groupID+fieldTitle+"OrList", format.JoinOr(values))

		for i, v := range values {
			n := strconv.Itoa(i + 1)
			s.vars.SetIfAbsent(singular+n+fieldTitle, v)
			s.vars.SetIfAbsent(format.FirstUpper(singular)+n+fieldTitle, v)
			s.vars.SetIfAbsent(groupID+n+fieldTitle, v)
		}

		if len(values) > 0 {
			s.vars.SetIfAbsent(singular+fieldTitle, values[0])
		}
	}

	s.vars.SetGroup(groupID, buildLoopItems(groupID, group))

	if groupID == groupFounders {
		t.expandFounderFirsts(s, group)
	}
}

// groupFields returns the union of field names across all records of a
// group, sorted for deterministic variable generation. Records are
// heterogeneous: a corporate founder carries ceoName, an individual does
// not.
func groupFields(group ir.Group) []string {
	seen := make(map[string]bool)
	for _, item := range group {
		for field := range item {
			seen[field] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for field := range seen {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Field-name heuristics deciding how a group field is formatted. The
// table is the single reviewable artifact for this behavior; first match
// on a lowercase substring wins, anything unmatched passes through raw.
var groupFieldRules = []struct {
	substring string
	kind      string // "currency" | "person-name"
}{
	{"cash", "currency"},
	{"name", "person-name"},
}

// formatGroupField formats one record field for document substitution.
// Name fields of a corporate founder use corporate capitalization; every
// other name field is title-cased.
func formatGroupField(groupID string, item ir.GroupItem, field string) string {
	raw := item.Field(field)
	lower := strings.ToLower(field)
	for _, rule := range groupFieldRules {
		if !strings.Contains(lower, rule.substring) {
			continue
		}
		switch rule.kind {
		case "currency":
			return format.FormatCurrency(raw)
		case "person-name":
			if groupID == groupFounders && isCorporationItem(item) && field == "name" {
				return format.CorporateCapitalize(raw)
			}
			return format.TitleCase(raw)
		}
	}
	return raw
}

// buildLoopItems produces the renderer's loop array for one group. Items
// are fresh maps; the raw survey records are never mutated.
func buildLoopItems(groupID string, group ir.Group) []ir.LoopItem {
	items := make([]ir.LoopItem, 0, len(group))
	for i, record := range group {
		item := make(ir.LoopItem, len(record)+5)
		for field := range record {
			item[field] = formatGroupField(groupID, record, field)
		}
		item["index"] = i + 1
		item["first"] = i == 0
		item["last"] = i == len(group)-1
		if groupID == groupFounders {
			corp := isCorporationItem(record)
			item["isCorporation"] = corp
			item["isIndividual"] = !corp
		}
		items = append(items, item)
	}
	return items
}

// expandFounderFirsts emits alias sets for the first individual founder
// and the first corporate founder, used by templates that address the two
// kinds separately.
func (t *Transformer) expandFounderFirsts(s *runState, group ir.Group) {
	var firstIndividual, firstCorporation ir.GroupItem
	for _, item := range group {
		if isCorporationItem(item) {
			if firstCorporation == nil {
				firstCorporation = item
			}
		} else if firstIndividual == nil {
			firstIndividual = item
		}
	}

	emit := func(prefix string, item ir.GroupItem) {
		if item == nil {
			return
		}
		for field := range item {
			s.vars.SetIfAbsent(prefix+format.FirstUpper(field), formatGroupField(groupFounders, item, field))
		}
	}
	emit("firstIndividualFounder", firstIndividual)
	emit("firstCorporationFounder", firstCorporation)
}
