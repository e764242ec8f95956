// internal/workers/assessment/normalize-checklist/schema.go
package normalizechecklist

import (
	"salesfit-assessment/internal/common/validation"
)

// RequestSchema describes the body of a questionnaire submission. It checks
// shapes and types only; indicator completeness is left to Normalize so that
// missing answers surface as MISSING_INDICATOR.
func RequestSchema() validation.JSONSchema {
	groups := make(map[string]validation.Property, len(taxonomy))
	for _, g := range taxonomy {
		props := make(map[string]validation.Property, len(g.Indicators))
		for _, ind := range g.Indicators {
			props[ind.Key] = validation.Property{Type: "boolean", Description: ind.Label}
		}
		groups[g.Key] = validation.Property{
			Type:        "object",
			Description: g.Heading,
			Properties:  props,
		}
	}

	amount := validation.Property{}
	sde := map[string]validation.Property{
		"netProfit":        amount,
		"ownerSalary":      amount,
		"personalExpenses": amount,
		"unusualExpenses":  amount,
		"interest":         amount,
		"depreciation":     amount,
		"total":            amount,
	}

	text := validation.Property{Type: "string"}
	return validation.JSONSchema{
		Schema:   "http://json-schema.org/draft-04/schema#",
		Type:     "object",
		Required: []string{"basicInfo", "sdeCalculation", "assessmentChecklist"},
		Properties: map[string]validation.Property{
			"basicInfo": {
				Type:     "object",
				Required: []string{"businessType", "saleTime"},
				Properties: map[string]validation.Property{
					"businessType":    text,
					"location":        text,
					"website":         text,
					"presentation":    text,
					"operationPeriod": text,
					"saleTime":        text,
				},
			},
			"sdeCalculation": {
				Type:       "object",
				Properties: sde,
			},
			"assessmentChecklist": {
				Type:       "object",
				Properties: groups,
			},
		},
	}
}
