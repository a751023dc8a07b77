package canvas

// SWOT groups the four classic analysis lists.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// SegmentScore is per-block scored feedback (0-10).
type SegmentScore struct {
	Segment  string  `json:"segment"`
	Feedback string  `json:"feedback"`
	Score    float64 `json:"score"`
}

// RiskItem describes one identified risk. Impact and Probability are one of
// "High", "Medium" or "Low".
type RiskItem struct {
	Risk        string `json:"risk"`
	Impact      string `json:"impact"`
	Probability string `json:"probability"`
	Mitigation  string `json:"mitigation"`
}

// MarketingStrategy is the suggested go-to-market summary.
type MarketingStrategy struct {
	Tagline     string   `json:"tagline"`
	TopChannels []string `json:"topChannels"`
	GrowthHack  string   `json:"growthHack"`
}

// RolePlan assigns concrete tasks to one organizational role.
type RolePlan struct {
	Role  string   `json:"role"`
	Tasks []string `json:"tasks"`
}

// DepartmentPlan groups role plans under a department.
type DepartmentPlan struct {
	Department string     `json:"department"`
	Roles      []RolePlan `json:"roles"`
}

// AnalysisResult is the full consultant report returned by the analysis
// service. The service occasionally omits the later sections even though the
// schema marks them required, so consumers must tolerate zero values for
// RiskAnalysis, KPIs, MarketingStrategy, ElevatorPitch and
// DepartmentalActionPlan.
type AnalysisResult struct {
	OverallScore           float64           `json:"overallScore"`
	ExecutiveSummary       string            `json:"executiveSummary"`
	SWOT                   SWOT              `json:"swot"`
	Suggestions            []string          `json:"suggestions"`
	SegmentAnalysis        []SegmentScore    `json:"segmentAnalysis"`
	RiskAnalysis           []RiskItem        `json:"riskAnalysis"`
	KPIs                   []string          `json:"kpis"`
	MarketingStrategy      MarketingStrategy `json:"marketingStrategy"`
	ElevatorPitch          string            `json:"elevatorPitch"`
	DepartmentalActionPlan []DepartmentPlan  `json:"departmentalActionPlan"`
}
