package engine

import (
	"strconv"
	"strings"

	"github.com/inkwell-docs/inkwell/internal/format"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Person is one distinct individual or entity collected across the
// directors group, the founders group, and the officer-name answers.
type Person struct {
	Name    string
	Address string
	Email   string
	Cash    string
	CeoName string
	Type    string // "corporation" or "" for individuals

	// Roles accumulates every role the person holds, in encounter
	// order: Founder, Director, CEO, ...
	Roles []string

	// FounderIndex is the person's 1-based position in the founders
	// group, 0 when not a founder. Used to look the share variable up.
	FounderIndex int

	IsFounder  bool
	IsDirector bool
}

// IsCorporation reports whether the person is a corporate founder.
func (p Person) IsCorporation() bool {
	return strings.EqualFold(strings.TrimSpace(p.Type), typeCorporation)
}

// PersonDocument is one per-person rendering context: the person plus a
// full variable map with the person overlay applied.
type PersonDocument struct {
	Person Person
	Vars   *ir.VarMap
}

// CollectPersons gathers every distinct person across the founders group,
// the directors group, and the officer answers, accumulating all roles
// each person holds.
//
// Deduplication is by exact-cased name. That differs from the
// case-insensitive matching used everywhere else in this engine; the
// behavior is preserved as observed in production data ("John Doe" and
// "john doe" generate separate documents) and must not be "fixed" without
// confirming intent.
func CollectPersons(rs *ir.ResponseSet) []Person {
	var order []string
	byName := make(map[string]*Person)

	upsert := func(name string) *Person {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}
		if p, ok := byName[name]; ok {
			return p
		}
		p := &Person{Name: name}
		byName[name] = p
		order = append(order, name)
		return p
	}

	addRole := func(p *Person, role string) {
		for _, r := range p.Roles {
			if r == role {
				return
			}
		}
		p.Roles = append(p.Roles, role)
	}

	if founders, ok := rs.Group(groupFounders); ok {
		for i, item := range founders {
			p := upsert(item.Field("name"))
			if p == nil {
				continue
			}
			addRole(p, "Founder")
			p.IsFounder = true
			if p.FounderIndex == 0 {
				p.FounderIndex = i + 1
			}
			mergeField(&p.Address, item.Field("address"))
			mergeField(&p.Email, item.Field("email"))
			mergeField(&p.Cash, item.Field("cash"))
			mergeField(&p.CeoName, item.Field("ceoName"))
			mergeField(&p.Type, item.Field(typeFieldName))
		}
	}

	if directors, ok := rs.Group(groupDirectors); ok {
		for _, item := range directors {
			p := upsert(item.Field("name"))
			if p == nil {
				continue
			}
			addRole(p, "Director")
			p.IsDirector = true
			mergeField(&p.Address, item.Field("address"))
			mergeField(&p.Email, item.Field("email"))
		}
	}

	for _, role := range officerRoles {
		v, ok := rs.Scalar(role.questionID)
		if !ok {
			continue
		}
		if p := upsert(v); p != nil {
			addRole(p, role.title)
		}
	}

	out := make([]Person, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

// mergeField keeps the first non-empty value seen for a person field.
func mergeField(dst *string, v string) {
	if *dst == "" && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// ExpandPersons produces one rendering context per qualifying person for
// a repeat-for-persons template: the base variable map overlaid with the
// person's own variables, filtered by the template's person-type filter.
func ExpandPersons(base *ir.VarMap, rs *ir.ResponseSet, personTypeFilter string) []PersonDocument {
	var out []PersonDocument
	for _, p := range CollectPersons(rs) {
		if !matchesPersonFilter(p, personTypeFilter) {
			continue
		}
		vars := base.Clone()
		applyPersonOverlay(vars, p)
		out = append(out, PersonDocument{Person: p, Vars: vars})
	}
	return out
}

// matchesPersonFilter applies the template's personTypeFilter:
// "all" keeps everyone, "individual" drops corporate founders,
// "individual_founder" keeps non-corporate founders only, and the
// corporation filters keep corporate founders only.
func matchesPersonFilter(p Person, filter string) bool {
	switch filter {
	case "", ir.PersonFilterAll:
		return true
	case ir.PersonFilterIndividual:
		return !p.IsCorporation()
	case ir.PersonFilterIndividualFounder:
		return p.IsFounder && !p.IsCorporation()
	case ir.PersonFilterCorporation, ir.PersonFilterCorporationFounder:
		return p.IsFounder && p.IsCorporation()
	default:
		return false
	}
}

// applyPersonOverlay layers the person-specific variables on top of a
// cloned base map, including the legacy Founder*/Director* alias names
// older templates still reference, then fans the new keys out to their
// case aliases.
func applyPersonOverlay(vars *ir.VarMap, p Person) {
	name := format.TitleCase(p.Name)
	if p.IsCorporation() {
		name = format.CorporateCapitalize(p.Name)
	}

	share := ""
	if p.FounderIndex > 0 {
		share, _ = existingShare(vars, "Founder"+strconv.Itoa(p.FounderIndex)+"Share")
	}

	overlay := map[string]string{
		"PersonName":    name,
		"PersonAddress": p.Address,
		"PersonEmail":   p.Email,
		"PersonRoles":   format.JoinAnd(p.Roles),
		"PersonCash":    format.FormatCurrency(p.Cash),
		"PersonShare":   share,
		"PersonCeoName": format.TitleCase(p.CeoName),
	}
	if p.IsFounder {
		overlay["FounderName"] = name
		overlay["FounderAddress"] = p.Address
		overlay["FounderEmail"] = p.Email
		overlay["FounderCash"] = format.FormatCurrency(p.Cash)
		overlay["FounderShare"] = share
		overlay["FounderCeoName"] = format.TitleCase(p.CeoName)
	}
	if p.IsDirector {
		overlay["DirectorName"] = name
		overlay["DirectorAddress"] = p.Address
		overlay["DirectorEmail"] = p.Email
	}

	for _, key := range sortedKeys(overlay) {
		vars.Set(key, overlay[key])
		for _, alias := range deriveCaseAliases(key) {
			vars.Set(alias, overlay[key])
		}
	}
}
