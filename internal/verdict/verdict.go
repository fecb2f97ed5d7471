// Package verdict recovers the structured triage verdict from free-form model
// output. Models wrap JSON in prose or markdown, emit near-JSON with stray
// characters, or scatter the fields through text; extraction runs an ordered
// cascade of parsing strategies and bottoms out at an all-ERROR sentinel so a
// single malformed response can never abort a batch.
package verdict

// Sentinel is substituted for every verdict field when extraction fails
// outright.
const Sentinel = "ERROR"

// Field names as the prompt templates instruct models to emit them.
const (
	FieldFalsePositive     = "False Positive"
	FieldSanitizationFound = "Sanitization Found?"
	FieldAttackFeasible    = "Attack Feasible?"
	FieldConfidence        = "Confidence"
)

// RequiredFields lists the four fields every verdict must carry, in output
// order. The loose-scan anchor and the per-field recovery patterns derive from
// this list, so a schema change updates every tier together.
var RequiredFields = []string{
	FieldFalsePositive,
	FieldSanitizationFound,
	FieldAttackFeasible,
	FieldConfidence,
}

// Verdict is the structured judgment the batch pipeline needs from each model
// response.
type Verdict struct {
	FalsePositive     string `json:"False Positive"`
	SanitizationFound string `json:"Sanitization Found?"`
	AttackFeasible    string `json:"Attack Feasible?"`
	Confidence        string `json:"Confidence"`
	ModelUsed         string `json:"model_used"`
}

// SentinelVerdict returns the total-failure verdict for the given model.
func SentinelVerdict(model string) Verdict {
	return Verdict{
		FalsePositive:     Sentinel,
		SanitizationFound: Sentinel,
		AttackFeasible:    Sentinel,
		Confidence:        Sentinel,
		ModelUsed:         model,
	}
}

// Field returns the value of the named required field.
func (v Verdict) Field(name string) string {
	switch name {
	case FieldFalsePositive:
		return v.FalsePositive
	case FieldSanitizationFound:
		return v.SanitizationFound
	case FieldAttackFeasible:
		return v.AttackFeasible
	case FieldConfidence:
		return v.Confidence
	}
	return ""
}

func (v *Verdict) setField(name, value string) {
	switch name {
	case FieldFalsePositive:
		v.FalsePositive = value
	case FieldSanitizationFound:
		v.SanitizationFound = value
	case FieldAttackFeasible:
		v.AttackFeasible = value
	case FieldConfidence:
		v.Confidence = value
	}
}
