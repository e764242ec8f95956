// internal/workers/assessment/calculate-sde/handler.go
package calculatesde

import (
	"salesfit-assessment/internal/models"
)

const (
	TaskType = "calculate-sde"
)

// Form field names of the SDE inputs.
const (
	FieldNetProfit        = "netProfit"
	FieldOwnerSalary      = "ownerSalary"
	FieldPersonalExpenses = "personalExpenses"
	FieldUnusualExpenses  = "unusualExpenses"
	FieldInterest         = "interest"
	FieldDepreciation     = "depreciation"
)

// Calculate resolves the six SDE components. Absent inputs count as zero and
// the total may be negative.
func Calculate(in models.SdeInputs) models.SdeResult {
	return models.SdeResult{
		NetProfit:        in.NetProfit.Value(),
		OwnerSalary:      in.OwnerSalary.Value(),
		PersonalExpenses: in.PersonalExpenses.Value(),
		UnusualExpenses:  in.UnusualExpenses.Value(),
		Interest:         in.Interest.Value(),
		Depreciation:     in.Depreciation.Value(),
	}
}

// FromStrings builds inputs from raw form strings keyed by field name.
// Unknown keys, including "total", are ignored.
func FromStrings(fields map[string]string) models.SdeInputs {
	return models.SdeInputs{
		NetProfit:        models.ParseAmount(fields[FieldNetProfit]),
		OwnerSalary:      models.ParseAmount(fields[FieldOwnerSalary]),
		PersonalExpenses: models.ParseAmount(fields[FieldPersonalExpenses]),
		UnusualExpenses:  models.ParseAmount(fields[FieldUnusualExpenses]),
		Interest:         models.ParseAmount(fields[FieldInterest]),
		Depreciation:     models.ParseAmount(fields[FieldDepreciation]),
	}
}
