// internal/models/assessment.go
package models

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "salesfit-assessment/internal/common/errors"
)

// NotProvided replaces empty optional basic information.
const NotProvided = "Not provided"

// Checklist group keys, as they appear on the wire.
const (
	GroupEntrepreneur       = "entrepreneur"
	GroupBusinessOperations = "businessOperations"
	GroupCompany            = "company"
	GroupFutureProspects    = "futureProspects"
)

type BasicInfo struct {
	BusinessType    string `json:"businessType"`
	Location        string `json:"location"`
	Website         string `json:"website"`
	Presentation    string `json:"presentation"`
	OperationPeriod string `json:"operationPeriod"`
	SaleTime        string `json:"saleTime"`
}

// WithDefaults returns a copy where blank optional fields read "Not provided".
func (b BasicInfo) WithDefaults() BasicInfo {
	out := b
	for _, f := range []*string{&out.Location, &out.Website, &out.Presentation, &out.OperationPeriod} {
		if strings.TrimSpace(*f) == "" {
			*f = NotProvided
		}
	}
	return out
}

// Validate reports blank required fields as an INVALID_REQUEST error.
func (b BasicInfo) Validate() error {
	var missing []string
	if strings.TrimSpace(b.BusinessType) == "" {
		missing = append(missing, "basicInfo.businessType")
	}
	if strings.TrimSpace(b.SaleTime) == "" {
		missing = append(missing, "basicInfo.saleTime")
	}
	if len(missing) > 0 {
		return apperrors.NewInvalidRequestError("required fields are empty: " + strings.Join(missing, ", "))
	}
	return nil
}

// SdeInputs are the raw Seller's Discretionary Earnings form values.
// A client-supplied total is ignored.
type SdeInputs struct {
	NetProfit        Amount `json:"netProfit"`
	OwnerSalary      Amount `json:"ownerSalary"`
	PersonalExpenses Amount `json:"personalExpenses"`
	UnusualExpenses  Amount `json:"unusualExpenses"`
	Interest         Amount `json:"interest"`
	Depreciation     Amount `json:"depreciation"`
}

// SdeResult holds resolved SDE components. The total is derived, never stored.
type SdeResult struct {
	NetProfit        float64 `json:"netProfit"`
	OwnerSalary      float64 `json:"ownerSalary"`
	PersonalExpenses float64 `json:"personalExpenses"`
	UnusualExpenses  float64 `json:"unusualExpenses"`
	Interest         float64 `json:"interest"`
	Depreciation     float64 `json:"depreciation"`
}

func (r SdeResult) Total() float64 {
	return r.NetProfit + r.OwnerSalary + r.PersonalExpenses + r.UnusualExpenses + r.Interest + r.Depreciation
}

func (r SdeResult) MarshalJSON() ([]byte, error) {
	type components SdeResult
	return json.Marshal(struct {
		components
		Total float64 `json:"total"`
	}{components(r), r.Total()})
}

// ChecklistAnswers are the submitted yes/no readiness answers per group.
type ChecklistAnswers struct {
	Entrepreneur       map[string]bool `json:"entrepreneur"`
	BusinessOperations map[string]bool `json:"businessOperations"`
	Company            map[string]bool `json:"company"`
	FutureProspects    map[string]bool `json:"futureProspects"`
}

// UnmarshalJSON keeps every submitted key so that Normalize can report
// unknown indicators. Values that are not JSON booleans decode as false; the
// request schema rejects them for known indicators.
func (c *ChecklistAnswers) UnmarshalJSON(data []byte) error {
	var raw struct {
		Entrepreneur       map[string]json.RawMessage `json:"entrepreneur"`
		BusinessOperations map[string]json.RawMessage `json:"businessOperations"`
		Company            map[string]json.RawMessage `json:"company"`
		FutureProspects    map[string]json.RawMessage `json:"futureProspects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = ChecklistAnswers{
		Entrepreneur:       decodeAnswers(raw.Entrepreneur),
		BusinessOperations: decodeAnswers(raw.BusinessOperations),
		Company:            decodeAnswers(raw.Company),
		FutureProspects:    decodeAnswers(raw.FutureProspects),
	}
	return nil
}

func decodeAnswers(raw map[string]json.RawMessage) map[string]bool {
	if raw == nil {
		return nil
	}
	out := make(map[string]bool, len(raw))
	for key, value := range raw {
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			b = false
		}
		out[key] = b
	}
	return out
}

// Group returns the answers of a group by wire key.
func (c ChecklistAnswers) Group(key string) (map[string]bool, bool) {
	switch key {
	case GroupEntrepreneur:
		return c.Entrepreneur, true
	case GroupBusinessOperations:
		return c.BusinessOperations, true
	case GroupCompany:
		return c.Company, true
	case GroupFutureProspects:
		return c.FutureProspects, true
	default:
		return nil, false
	}
}

// Checklist is the normalized, ordered and labelled form of ChecklistAnswers.
type Checklist struct {
	Groups []ChecklistGroup `json:"groups"`
}

type ChecklistGroup struct {
	Key        string      `json:"key"`
	Heading    string      `json:"heading"`
	Indicators []Indicator `json:"indicators"`
}

type Indicator struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value bool   `json:"value"`
}

// Tally counts affirmative and attention-needed indicators.
func (c Checklist) Tally() (affirmative, attention int) {
	for _, g := range c.Groups {
		for _, ind := range g.Indicators {
			if ind.Value {
				affirmative++
			} else {
				attention++
			}
		}
	}
	return affirmative, attention
}

// QuestionnaireSubmission is the body of POST /api/questionnaire/assess.
type QuestionnaireSubmission struct {
	BasicInfo           BasicInfo        `json:"basicInfo"`
	SdeCalculation      SdeInputs        `json:"sdeCalculation"`
	AssessmentChecklist ChecklistAnswers `json:"assessmentChecklist"`
}

// AssessmentRequest is the validated unit of work handed to the prompt composer.
type AssessmentRequest struct {
	BasicInfo BasicInfo
	Sde       SdeResult
	Checklist Checklist
}

type AssessmentResponse struct {
	Success        bool      `json:"success"`
	AssessmentText string    `json:"assessment,omitempty"`
	SdeTotal       float64   `json:"sdeTotal"`
	Timestamp      time.Time `json:"timestamp"`
	ErrorMessage   string    `json:"error,omitempty"`
	ErrorDetails   string    `json:"details,omitempty"`
	RequestID      string    `json:"requestId,omitempty"`
}
