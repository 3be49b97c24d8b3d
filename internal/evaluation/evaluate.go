package evaluation

import "github.com/jonathan/placement-prep/internal/types"

// Evaluate runs every evaluator in order: ATS, HR, red flags and, when job is set, JD matching
func Evaluate(resume *types.Resume, rules *types.LevelRules, job *types.JobContext) []types.RuleEvaluation {
	if resume == nil {
		resume = &types.Resume{}
	}
	evals := EvaluateATS(resume, rules)
	evals = append(evals, EvaluateHR(resume, rules)...)
	evals = append(evals, EvaluateRedFlags(resume, rules)...)
	evals = append(evals, EvaluateJD(resume, rules, job)...)
	return evals
}
