package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkwell-docs/inkwell/internal/format"
	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Transformer runs the variable transformation pipeline. Zero state is
// carried between calls; a Transformer is safe for concurrent use.
type Transformer struct {
	log       *zap.Logger
	now       func() time.Time
	docNumber func() string
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger attaches a logger for debug diagnostics. Logging never
// changes behavior.
func WithLogger(log *zap.Logger) Option {
	return func(t *Transformer) { t.log = log }
}

// WithClock fixes the pipeline's notion of "now". Tests and reproducible
// document runs inject a constant.
func WithClock(now func() time.Time) Option {
	return func(t *Transformer) { t.now = now }
}

// WithDocumentNumber overrides document-number generation.
func WithDocumentNumber(gen func() string) Option {
	return func(t *Transformer) { t.docNumber = gen }
}

// NewTransformer creates a Transformer with the given options.
func NewTransformer(opts ...Option) *Transformer {
	t := &Transformer{
		log:       zap.NewNop(),
		now:       time.Now,
		docNumber: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// runState is the mutable context threaded through the pipeline stages.
type runState struct {
	rs       *ir.ResponseSet
	mappings []ir.VariableMapping
	vars     *ir.VarMap
	now      time.Time
	computed map[string]string

	// deferred collects __calculated__ mappings; their formulas run
	// after every other mapping so they can reference any variable.
	deferred []ir.VariableMapping

	// founderShareSum carries the raw share total from the fallback
	// share stage into the option-pool stage.
	founderShareSum float64
}

// stage is one named step of the pipeline.
type stage struct {
	name  string
	apply func(*Transformer, *runState)
}

// pipeline is the totally ordered list of transformation stages. Later
// stages read what earlier stages wrote; the order is part of the engine's
// contract and must not change without changing the contract.
var pipeline = []stage{
	{"current-date", (*Transformer).injectCurrentDate},
	{"sign-dates", (*Transformer).resolveSignDates},
	{"company-address", (*Transformer).resolveCompanyAddress},
	{"auto-scalars", (*Transformer).autoScalarVariables},
	{"expand-groups", (*Transformer).expandGroups},
	{"share-sentinels", (*Transformer).resolveShareSentinels},
	{"officer-names", (*Transformer).resolveOfficerNames},
	{"apply-mappings", (*Transformer).applyMappings},
	{"calculated-mappings", (*Transformer).applyCalculated},
	{"founder-shares", (*Transformer).founderShareFallback},
	{"option-pool", (*Transformer).solveOptionPool},
	{"loop-shares", (*Transformer).attachLoopShares},
	{"bank-consent", (*Transformer).resolveBankConsentTitles},
	{"designator", (*Transformer).normalizeDesignator},
	{"stock-option", (*Transformer).normalizeStockOption},
	{"merge-computed", (*Transformer).mergeComputedVars},
	{"case-aliases", (*Transformer).expandCaseAliases},
}

// Transform runs the full pipeline over one document's responses and
// variable mappings, producing the variable map handed to the renderer.
func (t *Transformer) Transform(responses []ir.SurveyResponse, mappings []ir.VariableMapping) *ir.VarMap {
	rs := ir.NewResponseSet(responses)
	s := &runState{
		rs:       rs,
		mappings: mappings,
		vars:     ir.NewVarMap(),
		now:      t.now(),
		computed: BuildComputedVars(rs),
	}
	for _, st := range pipeline {
		st.apply(t, s)
	}
	t.log.Debug("transform complete",
		zap.Int("responses", rs.Len()),
		zap.Int("mappings", len(mappings)),
		zap.Int("variables", s.vars.Len()))
	return s.vars
}

// Question ids with dedicated pipeline stages. These are survey-design
// conventions, kept in one place so the heuristics stay reviewable.
const (
	questionCashIn          = "cashin"
	questionHasUSAddress    = "hasUsAddress"
	questionUSAddress       = "usAddress"
	questionKRAddress       = "krAddress"
	questionOptionPool      = "optionPool"
	questionDesignator      = "designator"
	questionDesignatorOther = "designatorCustom"
	questionStockOption     = "stockOption"
	questionBankConsent1    = "bankConsentName1"
	questionBankConsent2    = "bankConsentName2"
)

// injectCurrentDate seeds the fixed date/time/year/document-number
// variables every document can reference.
func (t *Transformer) injectCurrentDate(s *runState) {
	s.vars.Set("currentDate", format.FormatTime(s.now, "long"))
	s.vars.Set("currentTime", s.now.Format("3:04 PM"))
	s.vars.Set("currentYear", strconv.Itoa(s.now.Year()))
	s.vars.Set("documentNumber", t.docNumber())
}

// resolveSignDates resolves the admin-set incorporation and signing date
// overrides, falling back to "now" when unset, and derives the
// shareholder signing date from the cash-in answer.
func (t *Transformer) resolveSignDates(s *runState) {
	s.vars.Set("COIDate", t.dateOrNow(s, ir.SentinelCOIDate))
	s.vars.Set("SIGNDate", t.dateOrNow(s, ir.SentinelSignDate))

	raw, ok := s.rs.Scalar(questionCashIn)
	if !ok {
		return
	}
	cashIn, ok := format.ParseDate(raw)
	if !ok {
		t.log.Debug("cash-in date did not parse", zap.String("value", raw))
		return
	}
	s.vars.Set("SHSIGNDate", format.FormatTime(shareholderSignDate(cashIn), "long"))
}

// dateOrNow reads an admin date override, defaulting to the current date.
func (t *Transformer) dateOrNow(s *runState, sentinelID string) string {
	if raw, ok := s.rs.Scalar(sentinelID); ok {
		if d, ok := format.ParseDate(raw); ok {
			return format.FormatTime(d, "long")
		}
		t.log.Debug("date override did not parse",
			zap.String("sentinel", sentinelID))
	}
	return format.FormatTime(s.now, "long")
}

// resolveCompanyAddress picks the company address, preferring the US
// address when the has-US-address flag is set and the US address answer
// is non-empty.
func (t *Transformer) resolveCompanyAddress(s *runState) {
	if truthy(scalarOr(s.rs, questionHasUSAddress, "")) {
		if us := strings.TrimSpace(scalarOr(s.rs, questionUSAddress, "")); us != "" {
			s.vars.Set("companyAddress", us)
			return
		}
	}
	if kr := strings.TrimSpace(scalarOr(s.rs, questionKRAddress, "")); kr != "" {
		s.vars.Set("companyAddress", kr)
	}
}

// Name-pattern table deciding how auto-generated scalar variables are
// formatted. First lowercase-substring match wins; unmatched ids pass
// through raw.
var autoFormatRules = []struct {
	substring string
	apply     func(string) string
}{
	{"companyname", format.CorporateCapitalize},
	{"corpname", format.CorporateCapitalize},
	{"name", format.TitleCase},
}

// autoScalarVariables emits one variable per scalar answer, keyed by the
// raw question id, plus a first-letter-capitalized alias. Sentinel
// answers and repeating groups are handled by their own stages.
func (t *Transformer) autoScalarVariables(s *runState) {
	for _, qid := range s.rs.QuestionIDs() {
		if ir.IsSentinelID(qid) {
			continue
		}
		raw, ok := s.rs.Scalar(qid)
		if !ok {
			continue
		}
		v := autoFormatScalar(qid, raw)
		s.vars.SetIfAbsent(qid, v)
		s.vars.SetIfAbsent(format.FirstUpper(qid), v)
	}
}

func autoFormatScalar(questionID, value string) string {
	lower := strings.ToLower(questionID)
	for _, rule := range autoFormatRules {
		if strings.Contains(lower, rule.substring) {
			return rule.apply(value)
		}
	}
	return value
}

// resolveShareSentinels turns the admin-set share-structure overrides
// into raw and formatted variables.
func (t *Transformer) resolveShareSentinels(s *runState) {
	if v, ok := s.rs.Scalar(ir.SentinelAuthorizedShares); ok {
		s.vars.Set("authorizedShares", strings.TrimSpace(v))
		s.vars.Set("authorizedSharesFormatted", format.FormatNumberWithComma(v))
	}
	if v, ok := s.rs.Scalar(ir.SentinelParValue); ok {
		s.vars.Set("parValue", strings.TrimSpace(v))
		s.vars.Set("parValueFormatted", format.FormatCurrency(v))
	}
	if v, ok := s.rs.Scalar(ir.SentinelFairMarketValue); ok {
		s.vars.Set("fairMarketValue", strings.TrimSpace(v))
		s.vars.Set("fairMarketValueFormatted", format.FormatCurrency(v))
	}
}

// officerRoles lists the officer-name answers with their alias casings
// and consent titles.
var officerRoles = []struct {
	questionID string
	acronym    string
	title      string
}{
	{"ceoName", "CEO", "CEO"},
	{"cfoName", "CFO", "CFO"},
	{"cooName", "COO", "COO"},
	{"secretaryName", "Secretary", "Corporate Secretary"},
}

// resolveOfficerNames re-applies title case to the officer-name answers,
// overriding the auto-generated value, and emits the acronym alias
// casings (CEOName, CfoName, ...) templates use interchangeably.
func (t *Transformer) resolveOfficerNames(s *runState) {
	for _, role := range officerRoles {
		raw, ok := s.rs.Scalar(role.questionID)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v := format.TitleCase(raw)
		s.vars.Set(role.questionID, v)
		s.vars.Set(format.FirstUpper(role.questionID), v)
		s.vars.Set(role.acronym+"Name", v)
	}
}

// maxFounderShareFallback caps how many founders get a fallback share
// calculation. Surveys with more founders configure explicit mappings.
const maxFounderShareFallback = 9

// founderShareFallback computes cash / fair-market-value (floored) for
// every founder whose share variable no mapping set, and totals founder
// cash and shares into cashSum/shareSum.
func (t *Transformer) founderShareFallback(s *runState) {
	founders, ok := s.rs.Group(groupFounders)
	if !ok {
		return
	}
	fmv, _ := parseNumber(s.vars.Lookup("fairMarketValue"))

	var cashSum, shareSum float64
	for i, item := range founders {
		cash, _ := parseNumber(item.Field("cash"))
		cashSum += cash

		shareName := "Founder" + strconv.Itoa(i+1) + "Share"
		if v, set := existingShare(s.vars, shareName); set {
			share, _ := parseNumber(v)
			shareSum += share
			continue
		}
		if i >= maxFounderShareFallback || fmv <= 0 {
			continue
		}
		share := math.Floor(cash / fmv)
		s.vars.Set(shareName, format.FormatNumber(share))
		shareSum += share
	}

	s.vars.Set("cashSum", format.FormatNumber(cashSum))
	s.vars.Set("shareSum", format.FormatNumber(shareSum))
	s.founderShareSum = shareSum
}

// existingShare looks a share variable up under both casing conventions
// mappings historically used.
func existingShare(vars *ir.VarMap, name string) (string, bool) {
	if v, ok := vars.Get(name); ok {
		return v, true
	}
	return vars.Get(format.FirstLower(name))
}

// solveOptionPool sizes the option pool from its percentage answer: with
// pool fraction p and founder share total S, pool shares x satisfy
// x = p*(S+x), so x = p*S/(1-p). The result is floored and a total-issued
// figure is derived.
func (t *Transformer) solveOptionPool(s *runState) {
	raw, ok := s.rs.Scalar(questionOptionPool)
	if !ok {
		return
	}
	percent, ok := parseNumber(raw)
	if !ok || percent <= 0 || percent >= 100 || s.founderShareSum <= 0 {
		return
	}
	p := percent / 100
	pool := math.Floor(p * s.founderShareSum / (1 - p))
	s.vars.Set("optionPoolShares", format.FormatNumber(pool))
	s.vars.Set("totalIssuedShares", format.FormatNumber(s.founderShareSum+pool))
}

// attachLoopShares adds the computed share field to every founders loop
// record so templates can print per-row share counts.
func (t *Transformer) attachLoopShares(s *runState) {
	fmv, _ := parseNumber(s.vars.Lookup("fairMarketValue"))
	if fmv <= 0 {
		return
	}
	items, ok := s.vars.Group(groupFounders)
	if !ok {
		return
	}
	for _, item := range items {
		if _, exists := item["share"]; exists {
			continue
		}
		cash, _ := parseNumber(stringField(item, "cash"))
		item["share"] = format.FormatNumber(math.Floor(cash / fmv))
	}
}

// resolveBankConsentTitles resolves the role title for the two bank
// consent signatories by collecting every role the named person holds.
// Officer titles win over Director, which wins over Founder; multiple
// officer roles join as prose.
func (t *Transformer) resolveBankConsentTitles(s *runState) {
	for i, qid := range []string{questionBankConsent1, questionBankConsent2} {
		name, ok := s.rs.Scalar(qid)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		s.vars.Set("bankConsentTitle"+strconv.Itoa(i+1), t.rolesForName(s, name))
	}
}

// rolesForName looks a person's roles up across officer answers and the
// directors/founders groups.
func (t *Transformer) rolesForName(s *runState, name string) string {
	var officerTitles []string
	for _, role := range officerRoles {
		if v, ok := s.rs.Scalar(role.questionID); ok && sameName(v, name) {
			officerTitles = append(officerTitles, role.title)
		}
	}
	if len(officerTitles) > 0 {
		return format.JoinAnd(officerTitles)
	}
	if groupHasName(s.rs, groupDirectors, name) {
		return "Director"
	}
	if groupHasName(s.rs, groupFounders, name) {
		return "Founder"
	}
	return ""
}

func groupHasName(rs *ir.ResponseSet, groupID, name string) bool {
	group, ok := rs.Group(groupID)
	if !ok {
		return false
	}
	for _, item := range group {
		if sameName(item.Field("name"), name) {
			return true
		}
	}
	return false
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// normalizeDesignator resolves the corporate designator answer. The
// literal option "custom" defers to the free-text override answer.
func (t *Transformer) normalizeDesignator(s *runState) {
	v, ok := s.rs.Scalar(questionDesignator)
	if !ok {
		return
	}
	if strings.EqualFold(strings.TrimSpace(v), "custom") {
		v = scalarOr(s.rs, questionDesignatorOther, "")
	}
	s.vars.Set("designator", strings.TrimSpace(v))
}

// normalizeStockOption folds the boolean-like stock option answer into a
// true/false flag variable.
func (t *Transformer) normalizeStockOption(s *runState) {
	v, ok := s.rs.Scalar(questionStockOption)
	if !ok {
		return
	}
	s.vars.Set("hasStockOption", boolText(truthy(v)))
}

// mergeComputedVars folds the count/flag table into the variable map
// without overwriting anything a mapping already set.
func (t *Transformer) mergeComputedVars(s *runState) {
	for _, name := range sortedKeys(s.computed) {
		s.vars.SetIfAbsent(name, s.computed[name])
	}
}

// expandCaseAliases fans every string variable out to its lower, upper,
// first-upper, and first-lower alias names, never overwriting an existing
// entry. Group arrays are not aliased.
func (t *Transformer) expandCaseAliases(s *runState) {
	for _, name := range s.vars.Names() {
		value := s.vars.Lookup(name)
		for _, alias := range deriveCaseAliases(name) {
			s.vars.SetIfAbsent(alias, value)
		}
	}
}

// Validate reports which mapped variables are unresolved or empty. It
// warns; it never blocks. The caller decides whether missing data stops
// document generation.
func Validate(vars *ir.VarMap, mappings []ir.VariableMapping) ir.ValidationResult {
	result := ir.ValidationResult{IsValid: true}
	for _, m := range mappings {
		v, ok := vars.Get(m.VariableName)
		if !ok {
			result.MissingVariables = append(result.MissingVariables, m.VariableName)
			result.IsValid = false
			continue
		}
		if m.Required && strings.TrimSpace(v) == "" {
			result.EmptyRequired = append(result.EmptyRequired, m.VariableName)
			result.IsValid = false
		}
	}
	return result
}

// truthy folds the boolean-like answer spellings into a bool.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1", "y":
		return true
	default:
		return false
	}
}

func scalarOr(rs *ir.ResponseSet, questionID, fallback string) string {
	if v, ok := rs.Scalar(questionID); ok {
		return v
	}
	return fallback
}

func stringField(item ir.LoopItem, field string) string {
	if v, ok := item[field].(string); ok {
		return v
	}
	return ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
