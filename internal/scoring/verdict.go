package scoring

import (
	"math"

	"github.com/jonathan/placement-prep/internal/evaluation"
	"github.com/jonathan/placement-prep/internal/types"
)

// Thresholds map a final score to a verdict
type Thresholds struct {
	Pass       float64 `json:"pass" yaml:"pass"`
	Borderline float64 `json:"borderline" yaml:"borderline"`
}

// DefaultThresholds returns pass >= 75, borderline >= 55
func DefaultThresholds() Thresholds {
	return Thresholds{Pass: 75, Borderline: 55}
}

// CategoryWeights blend the ats, hr and jd category scores
type CategoryWeights struct {
	ATS float64 `json:"ats" yaml:"ats"`
	HR  float64 `json:"hr" yaml:"hr"`
	JD  float64 `json:"jd" yaml:"jd"`
}

// DefaultCategoryWeights returns ats 0.40, hr 0.35, jd 0.25
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{ATS: 0.40, HR: 0.35, JD: 0.25}
}

// Verdict strategy defaults
const (
	DefaultMaxPenalty = 20.0
	DefaultFloor      = 0.0
)

// VerdictScore blends category pass rates and subtracts the red-flag penalty.
// The penalty is capped at MaxPenalty and the final score never drops below Floor.
type VerdictScore struct {
	Weights    CategoryWeights
	Thresholds Thresholds
	MaxPenalty float64
	Floor      float64
}

// NewVerdictScore returns a VerdictScore with default weights, thresholds, cap and floor
func NewVerdictScore() VerdictScore {
	return VerdictScore{
		Weights:    DefaultCategoryWeights(),
		Thresholds: DefaultThresholds(),
		MaxPenalty: DefaultMaxPenalty,
		Floor:      DefaultFloor,
	}
}

// Score evaluates the resume and derives the verdict. JD matching only runs when job is non-nil.
func (v VerdictScore) Score(resume *types.Resume, rules *types.LevelRules, job *types.JobContext) types.VerdictResult {
	return v.FromEvaluations(evaluation.Evaluate(resume, rules, job), job != nil)
}

// FromEvaluations derives the verdict from already computed evaluations
func (v VerdictScore) FromEvaluations(evals []types.RuleEvaluation, withJob bool) types.VerdictResult {
	ats := CategoryScore(types.FilterByCategory(evals, types.CategoryATS))
	hr := CategoryScore(types.FilterByCategory(evals, types.CategoryHR))

	breakdown := []types.ScoreBreakdown{
		{Category: types.CategoryATS, Score: round(ats), Weight: v.Weights.ATS},
		{Category: types.CategoryHR, Score: round(hr), Weight: v.Weights.HR},
	}
	total := ats*v.Weights.ATS + hr*v.Weights.HR
	weightSum := v.Weights.ATS + v.Weights.HR

	var jdScore *float64
	if withJob {
		jd := CategoryScore(types.FilterByCategory(evals, types.CategoryJD))
		jdScore = &jd
		breakdown = append(breakdown, types.ScoreBreakdown{Category: types.CategoryJD, Score: round(jd), Weight: v.Weights.JD})
		total += jd * v.Weights.JD
		weightSum += v.Weights.JD
	}

	base := 0.0
	if weightSum > 0 && !math.IsNaN(weightSum) {
		base = clamp(total/weightSum, 0, 100)
	}

	penalty := Penalty(evals, v.MaxPenalty)
	final := round(clamp(base-penalty, v.Floor, 100))

	return types.VerdictResult{
		ATSScore:    ats,
		HRScore:     hr,
		JDScore:     jdScore,
		BaseScore:   base,
		Penalty:     penalty,
		FinalScore:  final,
		Verdict:     v.Thresholds.Classify(float64(final)),
		Breakdown:   breakdown,
		Evaluations: evals,
		Strategy:    StrategyVerdict,
	}
}

// CategoryScore is the passed weight over the total weight, as 0-100.
// An empty category scores 100.
func CategoryScore(evals []types.RuleEvaluation) float64 {
	passed, total := 0.0, 0.0
	for _, e := range evals {
		w := math.Abs(e.Weight)
		total += w
		if e.Passed {
			passed += w
		}
	}
	if total <= 0 {
		return 100
	}
	return passed / total * 100
}

// Penalty sums the magnitude of every failed red flag, capped at maxPenalty (no cap when maxPenalty is negative)
func Penalty(evals []types.RuleEvaluation, maxPenalty float64) float64 {
	sum := 0.0
	for _, e := range evals {
		if e.Category == types.CategoryRedFlag && !e.Passed {
			sum += math.Abs(e.Weight)
		}
	}
	if maxPenalty >= 0 && sum > maxPenalty {
		return maxPenalty
	}
	return sum
}

// Classify maps a score to pass, borderline or fail
func (t Thresholds) Classify(score float64) types.Verdict {
	switch {
	case score >= t.Pass:
		return types.VerdictPass
	case score >= t.Borderline:
		return types.VerdictBorderline
	default:
		return types.VerdictFail
	}
}
