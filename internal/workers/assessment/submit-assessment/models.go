// internal/workers/assessment/submit-assessment/models.go
package submitassessment

// Input is one dispatch to the LLM service.
type Input struct {
	Prompt    string
	SdeTotal  float64
	RequestID string
}

// State is the lifecycle of a single dispatch.
type State string

const (
	StateIdle       State = "idle"
	StateDispatched State = "dispatched"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)
