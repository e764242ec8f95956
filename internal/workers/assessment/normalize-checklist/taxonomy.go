// internal/workers/assessment/normalize-checklist/taxonomy.go
package normalizechecklist

import "salesfit-assessment/internal/models"

// TaxonomyVersion changes whenever a group, key or label below changes.
const TaxonomyVersion = "2025.1"

type IndicatorSpec struct {
	Key   string
	Label string
}

type GroupSpec struct {
	Key        string
	Heading    string
	Indicators []IndicatorSpec
}

var taxonomy = []GroupSpec{
	{
		Key:     models.GroupEntrepreneur,
		Heading: "A. ENTREPRENEUR READINESS:",
		Indicators: []IndicatorSpec{
			{"unanimousDecision", "Owner commitment to sale decision"},
			{"replaceableRole", "Owner replaceability in operations"},
		},
	},
	{
		Key:     models.GroupBusinessOperations,
		Heading: "B. BUSINESS OPERATIONS:",
		Indicators: []IndicatorSpec{
			{"upToDateProducts", "Product/service modernization"},
			{"suitableCustomers", "Customer base diversification"},
			{"suitableSuppliers", "Supplier diversity"},
			{"replaceableSubcontractors", "Subcontractor flexibility"},
			{"customerAwareness", "Market awareness & visibility"},
			{"positiveBrand", "Brand value & reputation"},
		},
	},
	{
		Key:     models.GroupCompany,
		Heading: "C. COMPANY FUNDAMENTALS:",
		Indicators: []IndicatorSpec{
			{"increasedTurnover", "Revenue growth trajectory"},
			{"profitable", "Profitability track record"},
			{"positiveEquity", "Equity position strength"},
			{"goodLiquidity", "Short-term debt management"},
			{"currentReceivables", "Receivables currency"},
			{"managedDebtRepayments", "Long-term debt servicing"},
			{"goodStaffNumber", "Staff optimization"},
			{"competentPersonnel", "Workforce competency"},
			{"goodContracts", "Contract documentation quality"},
			{"upToDateEmploymentContracts", "Employment contract compliance"},
			{"productionControlSystem", "Production management systems"},
			{"crmSystem", "Customer relationship systems"},
			{"systematicDevelopment", "Business development approach"},
		},
	},
	{
		Key:     models.GroupFutureProspects,
		Heading: "D. FUTURE PROSPECTS:",
		Indicators: []IndicatorSpec{
			{"goodBusinessProspects", "Business growth potential"},
			{"goodIndustryProspects", "Industry outlook"},
			{"goodEnvironmentProspects", "Operating environment stability"},
		},
	},
}

// Groups returns a copy of the taxonomy in presentation order.
func Groups() []GroupSpec {
	out := make([]GroupSpec, len(taxonomy))
	for i, g := range taxonomy {
		out[i] = GroupSpec{
			Key:        g.Key,
			Heading:    g.Heading,
			Indicators: append([]IndicatorSpec(nil), g.Indicators...),
		}
	}
	return out
}

// IndicatorCount is the number of indicators every submission must answer.
func IndicatorCount() int {
	n := 0
	for _, g := range taxonomy {
		n += len(g.Indicators)
	}
	return n
}

// Label looks up the display label of an indicator.
func Label(group, key string) (string, bool) {
	for _, g := range taxonomy {
		if g.Key != group {
			continue
		}
		for _, ind := range g.Indicators {
			if ind.Key == key {
				return ind.Label, true
			}
		}
	}
	return "", false
}

// UniformAnswers answers every indicator with the same value.
func UniformAnswers(value bool) models.ChecklistAnswers {
	answers := models.ChecklistAnswers{
		Entrepreneur:       map[string]bool{},
		BusinessOperations: map[string]bool{},
		Company:            map[string]bool{},
		FutureProspects:    map[string]bool{},
	}
	for _, g := range taxonomy {
		group, _ := answers.Group(g.Key)
		for _, ind := range g.Indicators {
			group[ind.Key] = value
		}
	}
	return answers
}
