package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-docs/inkwell/internal/ir"
	"github.com/inkwell-docs/inkwell/internal/testutil"
)

func fixedTransformer() *Transformer {
	clock := testutil.NewFrozenClock(time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC))
	return NewTransformer(
		WithClock(clock.Now),
		WithDocumentNumber(testutil.NewDocumentNumbers("doc").Next),
	)
}

func TestTransform_EndToEnd(t *testing.T) {
	tr := fixedTransformer()

	responses := []ir.SurveyResponse{
		{QuestionID: "companyName1", Value: ir.Scalar("acme corp")},
		{QuestionID: "founders", Value: ir.Group{
			{"name": "jane doe", "type": "individual", "cash": "1000000"},
		}},
		{QuestionID: ir.SentinelFairMarketValue, Value: ir.Scalar("0.10")},
	}
	mappings := []ir.VariableMapping{
		{VariableName: "companyName", QuestionID: "companyName1", DataType: ir.DataTypeText, TransformRule: "capitalize"},
	}

	vars := tr.Transform(responses, mappings)

	assert.Equal(t, "Acme Corp", vars.Lookup("companyName"))
	assert.Equal(t, "10,000,000", vars.Lookup("Founder1Share"))
	assert.Equal(t, "1,000,000", vars.Lookup("cashSum"))
	assert.Equal(t, "10,000,000", vars.Lookup("shareSum"))
}

func TestTransform_CurrentDateVariables(t *testing.T) {
	vars := fixedTransformer().Transform(nil, nil)

	assert.Equal(t, "March 10, 2026", vars.Lookup("currentDate"))
	assert.Equal(t, "2:30 PM", vars.Lookup("currentTime"))
	assert.Equal(t, "2026", vars.Lookup("currentYear"))
	assert.Equal(t, "doc-0001", vars.Lookup("documentNumber"))
}

func TestTransform_SignDates(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: ir.SentinelCOIDate, Value: ir.Scalar("2026-01-05")},
		{QuestionID: "cashin", Value: ir.Scalar("2026-03-20")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	assert.Equal(t, "January 5, 2026", vars.Lookup("COIDate"))
	// No override answered: the signing date defaults to today.
	assert.Equal(t, "March 10, 2026", vars.Lookup("SIGNDate"))
	// Cash-in on the 20th pushes shareholder signing to the end of the
	// following month.
	assert.Equal(t, "April 30, 2026", vars.Lookup("SHSIGNDate"))
}

func TestTransform_CompanyAddress(t *testing.T) {
	tests := []struct {
		name      string
		responses []ir.SurveyResponse
		want      string
	}{
		{
			name: "us address preferred when flagged",
			responses: []ir.SurveyResponse{
				{QuestionID: "hasUsAddress", Value: ir.Scalar("yes")},
				{QuestionID: "usAddress", Value: ir.Scalar("1 Market St, San Francisco")},
				{QuestionID: "krAddress", Value: ir.Scalar("123 Teheran-ro, Seoul")},
			},
			want: "1 Market St, San Francisco",
		},
		{
			name: "flag without us answer falls back",
			responses: []ir.SurveyResponse{
				{QuestionID: "hasUsAddress", Value: ir.Scalar("yes")},
				{QuestionID: "usAddress", Value: ir.Scalar("  ")},
				{QuestionID: "krAddress", Value: ir.Scalar("123 Teheran-ro, Seoul")},
			},
			want: "123 Teheran-ro, Seoul",
		},
		{
			name: "no flag uses domestic address",
			responses: []ir.SurveyResponse{
				{QuestionID: "usAddress", Value: ir.Scalar("1 Market St, San Francisco")},
				{QuestionID: "krAddress", Value: ir.Scalar("123 Teheran-ro, Seoul")},
			},
			want: "123 Teheran-ro, Seoul",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := fixedTransformer().Transform(tt.responses, nil)
			assert.Equal(t, tt.want, vars.Lookup("companyAddress"))
		})
	}
}

func TestTransform_ShareSentinels(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: ir.SentinelAuthorizedShares, Value: ir.Scalar("10000000")},
		{QuestionID: ir.SentinelParValue, Value: ir.Scalar("0.0001")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	assert.Equal(t, "10000000", vars.Lookup("authorizedShares"))
	assert.Equal(t, "10,000,000", vars.Lookup("authorizedSharesFormatted"))
	assert.Equal(t, "$0.0001", vars.Lookup("parValueFormatted"))
}

func TestTransform_OfficerNames(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "ceoName", Value: ir.Scalar("jane doe")},
		{QuestionID: "secretaryName", Value: ir.Scalar("john roe")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	assert.Equal(t, "Jane Doe", vars.Lookup("ceoName"))
	assert.Equal(t, "Jane Doe", vars.Lookup("CeoName"))
	assert.Equal(t, "Jane Doe", vars.Lookup("CEOName"))
	assert.Equal(t, "John Roe", vars.Lookup("SecretaryName"))
}

func TestTransform_CalculatedMapping(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "pricePerShare", Value: ir.Scalar("0.10")},
		{QuestionID: "shareCount", Value: ir.Scalar("50000")},
	}
	mappings := []ir.VariableMapping{
		{VariableName: "purchasePrice", QuestionID: ir.QuestionCalculated,
			DataType: ir.DataTypeCurrency, Formula: "{pricePerShare} * {shareCount}"},
	}

	vars := fixedTransformer().Transform(responses, mappings)
	assert.Equal(t, "$5,000", vars.Lookup("purchasePrice"))
}

func TestTransform_CalculatedMappingFailureUsesDefault(t *testing.T) {
	mappings := []ir.VariableMapping{
		{VariableName: "broken", QuestionID: ir.QuestionCalculated,
			Formula: "{missing} / 0", DefaultValue: "n/a"},
	}

	vars := fixedTransformer().Transform(nil, mappings)
	assert.Equal(t, "n/a", vars.Lookup("broken"))
}

func TestTransform_OptionPool(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "founders", Value: ir.Group{
			{"name": "jane doe", "type": "individual", "cash": "1000000"},
		}},
		{QuestionID: ir.SentinelFairMarketValue, Value: ir.Scalar("0.10")},
		{QuestionID: "optionPool", Value: ir.Scalar("10")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	// 10% of post-pool equals floor(0.10 * 10,000,000 / 0.90).
	assert.Equal(t, "1,111,111", vars.Lookup("optionPoolShares"))
	assert.Equal(t, "11,111,111", vars.Lookup("totalIssuedShares"))
}

func TestTransform_OptionPoolIgnoresOutOfRangePercent(t *testing.T) {
	for _, percent := range []string{"0", "100", "150", "-5", "abc"} {
		responses := []ir.SurveyResponse{
			{QuestionID: "founders", Value: ir.Group{
				{"name": "jane doe", "cash": "1000000"},
			}},
			{QuestionID: ir.SentinelFairMarketValue, Value: ir.Scalar("0.10")},
			{QuestionID: "optionPool", Value: ir.Scalar(percent)},
		}
		vars := fixedTransformer().Transform(responses, nil)
		assert.False(t, vars.Has("optionPoolShares"), "percent %q", percent)
	}
}

func TestTransform_LoopShares(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "founders", Value: ir.Group{
			{"name": "jane doe", "cash": "1000000"},
			{"name": "john roe", "cash": "500000"},
		}},
		{QuestionID: ir.SentinelFairMarketValue, Value: ir.Scalar("0.10")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	items, ok := vars.Group("founders")
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "10,000,000", items[0]["share"])
	assert.Equal(t, "5,000,000", items[1]["share"])
}

func TestTransform_BankConsentTitles(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "ceoName", Value: ir.Scalar("jane doe")},
		{QuestionID: "cfoName", Value: ir.Scalar("jane doe")},
		{QuestionID: "directors", Value: ir.Group{{"name": "john roe"}}},
		{QuestionID: "founders", Value: ir.Group{{"name": "mary major"}}},
		{QuestionID: "bankConsentName1", Value: ir.Scalar("Jane Doe")},
		{QuestionID: "bankConsentName2", Value: ir.Scalar("john roe")},
	}

	vars := fixedTransformer().Transform(responses, nil)

	// Officer titles join as prose and win over group membership.
	assert.Equal(t, "CEO and CFO", vars.Lookup("bankConsentTitle1"))
	assert.Equal(t, "Director", vars.Lookup("bankConsentTitle2"))
}

func TestTransform_Designator(t *testing.T) {
	vars := fixedTransformer().Transform([]ir.SurveyResponse{
		{QuestionID: "designator", Value: ir.Scalar("Inc.")},
	}, nil)
	assert.Equal(t, "Inc.", vars.Lookup("designator"))

	vars = fixedTransformer().Transform([]ir.SurveyResponse{
		{QuestionID: "designator", Value: ir.Scalar("custom")},
		{QuestionID: "designatorCustom", Value: ir.Scalar("Co.")},
	}, nil)
	assert.Equal(t, "Co.", vars.Lookup("designator"))
}

func TestTransform_StockOptionFlag(t *testing.T) {
	vars := fixedTransformer().Transform([]ir.SurveyResponse{
		{QuestionID: "stockOption", Value: ir.Scalar("Yes")},
	}, nil)
	assert.Equal(t, "true", vars.Lookup("hasStockOption"))

	vars = fixedTransformer().Transform([]ir.SurveyResponse{
		{QuestionID: "stockOption", Value: ir.Scalar("no")},
	}, nil)
	assert.Equal(t, "false", vars.Lookup("hasStockOption"))
}

func TestTransform_CaseAliases(t *testing.T) {
	vars := fixedTransformer().Transform([]ir.SurveyResponse{
		{QuestionID: "companyName1", Value: ir.Scalar("acme corp")},
	}, nil)

	for _, name := range []string{"companyName1", "CompanyName1", "companyname1", "COMPANYNAME1"} {
		assert.Equal(t, "Acme Corp", vars.Lookup(name), name)
	}
}

func TestTransform_ManualMappingBackfillsDefault(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "companyName1", Value: ir.Scalar("acme corp")},
	}
	mappings := []ir.VariableMapping{
		{VariableName: "boardApprovalNote", QuestionID: ir.QuestionManual, DefaultValue: "as approved"},
		// Already produced by scalar expansion: the manual default must
		// not clobber it.
		{VariableName: "companyName1", QuestionID: ir.QuestionManual, DefaultValue: "unused"},
	}

	vars := fixedTransformer().Transform(responses, mappings)
	assert.Equal(t, "as approved", vars.Lookup("boardApprovalNote"))
	assert.Equal(t, "Acme Corp", vars.Lookup("companyName1"))
}

func TestTransform_MultiSelectMapping(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "industries", Value: ir.MultiSelect{"software", "finance", "biotech"}},
	}
	mappings := []ir.VariableMapping{
		{VariableName: "industryList", QuestionID: "industries", DataType: ir.DataTypeList},
	}

	vars := fixedTransformer().Transform(responses, mappings)

	assert.Equal(t, "software, finance, and biotech", vars.Lookup("industryList"))
	assert.Equal(t, "software, finance, biotech", vars.Lookup("industryListList"))
	assert.Equal(t, "software, finance, or biotech", vars.Lookup("industryListOrList"))
}

func TestTransform_SentinelGroupReference(t *testing.T) {
	responses := []ir.SurveyResponse{
		{QuestionID: "founders", Value: ir.Group{
			{"name": "jane doe"},
			{"name": "john roe"},
		}},
	}
	mappings := []ir.VariableMapping{
		{VariableName: "allFounders", QuestionID: "__founders.name"},
		{VariableName: "secondFounder", QuestionID: "__founder.2.name"},
		{VariableName: "founderTotal", QuestionID: "__foundersCount"},
	}

	vars := fixedTransformer().Transform(responses, mappings)

	assert.Equal(t, "Jane Doe and John Roe", vars.Lookup("allFounders"))
	assert.Equal(t, "John Roe", vars.Lookup("secondFounder"))
	assert.Equal(t, "2", vars.Lookup("founderTotal"))
}

func TestValidate(t *testing.T) {
	vars := ir.NewVarMap()
	vars.Set("companyName", "Acme Corp")
	vars.Set("stateName", "  ")

	mappings := []ir.VariableMapping{
		{VariableName: "companyName", Required: true},
		{VariableName: "stateName", Required: true},
		{VariableName: "ceoName", Required: true},
		{VariableName: "optionalNote"},
	}

	result := Validate(vars, mappings)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"ceoName", "optionalNote"}, result.MissingVariables)
	assert.Equal(t, []string{"stateName"}, result.EmptyRequired)
}

func TestValidate_AllPresent(t *testing.T) {
	vars := ir.NewVarMap()
	vars.Set("companyName", "Acme Corp")

	result := Validate(vars, []ir.VariableMapping{{VariableName: "companyName", Required: true}})
	assert.True(t, result.IsValid)
	assert.Empty(t, result.MissingVariables)
	assert.Empty(t, result.EmptyRequired)
}
