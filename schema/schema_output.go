package schema

// Net flow label constants.
const (
	StrongValue    = "Strong"
	FavorableValue = "Favorable"
	NeutralValue   = "Neutral"
	WeakValue      = "Weak"
)

// AlternativeResult is one ranked alternative with its global flows.
type AlternativeResult struct {
	Rank          int                `json:"rank"`
	Index         int                `json:"index"`
	Name          string             `json:"name"`
	NetFlow       float64            `json:"net_flow"`
	PositiveFlow  float64            `json:"positive_flow"`
	NegativeFlow  float64            `json:"negative_flow"`
	Label         string             `json:"label"`
	Contributions map[string]float64 `json:"contributions,omitempty"` // weighted unicriterion net flow per criterion
}

// CriterionFlowResult holds the unicriterion flows of one alternative on one criterion.
type CriterionFlowResult struct {
	Criterion    string       `json:"criterion"`
	Function     string       `json:"function"`
	Weight       float64      `json:"weight"`
	Alternative  string       `json:"alternative"`
	PositiveFlow float64      `json:"positive_flow"`
	NegativeFlow float64      `json:"negative_flow"`
	NetFlow      float64      `json:"net_flow"`
	Kind         FunctionKind `json:"kind"`
}

// PairwiseResult is the weighted net pairwise preference matrix.
// Matrix[a][b] is the aggregated preference of a over b minus that of b over a.
type PairwiseResult struct {
	Alternatives []string    `json:"alternatives"`
	Matrix       [][]float64 `json:"matrix"`
}

// ShiftDetails compares one alternative before and after a performance shift.
type ShiftDetails struct {
	Name       string  `json:"name"`
	BeforeRank int     `json:"before_rank"`
	AfterRank  int     `json:"after_rank"`
	DeltaRank  int     `json:"delta_rank"` // positive means the alternative moved up
	BeforeNet  float64 `json:"before_net"`
	AfterNet   float64 `json:"after_net"`
	DeltaNet   float64 `json:"delta_net"`
}

// ShiftResult is the outcome of a what-if performance shift.
type ShiftResult struct {
	Criterion   string         `json:"criterion"`
	Alternative string         `json:"alternative"`
	Delta       float64        `json:"delta"`
	Details     []ShiftDetails `json:"details"`
}

// VerifyResult reports the deviation between the fast and the reference flow algorithms.
type VerifyResult struct {
	Criterion    string  `json:"criterion"`
	Function     string  `json:"function"`
	FastPath     bool    `json:"fast_path"`
	MaxDeviation float64 `json:"max_deviation"`
	Passed       bool    `json:"passed"`
}

// CriterionSummary describes one criterion for the show command.
type CriterionSummary struct {
	Name        string       `json:"name"`
	Direction   Direction    `json:"direction"`
	Kind        FunctionKind `json:"kind"`
	Function    string       `json:"function"`
	Weight      float64      `json:"weight"` // normalized
	Q           float64      `json:"q"`
	P           float64      `json:"p"`
	SmallestGap *float64     `json:"smallest_gap,omitempty"` // smallest non-zero gap between sorted performances
}

// ProblemSummary is the printable view of a loaded problem.
type ProblemSummary struct {
	Name         string             `json:"name"`
	Criteria     []CriterionSummary `json:"criteria"`
	Alternatives []AlternativeSpec  `json:"alternatives"` // performances in display units
}

// GetPlainLabel returns a plain text label describing how strongly an
// alternative outranks the others, based on its net flow in [-1, 1].
func GetPlainLabel(netFlow float64) string {
	switch {
	case netFlow >= 0.5:
		return StrongValue
	case netFlow >= 0.1:
		return FavorableValue
	case netFlow > -0.1:
		return NeutralValue
	default:
		return WeakValue
	}
}
