package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
	"github.com/Roman01-info/bmc-v3/internal/history"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func filledState() State {
	s := New()
	s, _ = Apply(s, EditField{Field: canvas.ValuePropositions, Value: "সাশ্রয়ী প্যাকেজ"})
	return s
}

func sampleResult() *canvas.AnalysisResult {
	return &canvas.AnalysisResult{OverallScore: 70, ExecutiveSummary: "ভালো"}
}

func TestSubmitOrdersSaveBeforeAnalysis(t *testing.T) {
	s := filledState()

	s, effects := Apply(s, Submit{})

	assert.Equal(t, ViewAnalyzing, s.View)
	assert.Empty(t, s.Err)
	require.Len(t, effects, 2)

	save, ok := effects[0].(SaveHistory)
	require.True(t, ok, "first effect must be the history save")
	assert.Equal(t, s.Canvas, save.Data)

	start, ok := effects[1].(StartAnalysis)
	require.True(t, ok, "second effect must start the analysis")
	assert.Equal(t, s.Generation, start.Token)
	assert.Equal(t, s.Canvas, start.Data)
}

func TestSubmitThenSuccessReachesResult(t *testing.T) {
	s := filledState()
	s, effects := Apply(s, Submit{})
	token := effects[1].(StartAnalysis).Token

	s, _ = Apply(s, AnalysisSucceeded{Token: token, Result: sampleResult()})

	assert.Equal(t, ViewResult, s.View)
	require.NotNil(t, s.Result)
	assert.Equal(t, float64(70), s.Result.OverallScore)
	assert.Empty(t, s.Err)
}

func TestSubmitThenFailureRevertsToInput(t *testing.T) {
	s := filledState()
	before := s.Canvas
	s, effects := Apply(s, Submit{})
	token := effects[1].(StartAnalysis).Token

	s, _ = Apply(s, AnalysisFailed{Token: token})

	assert.Equal(t, ViewInput, s.View)
	assert.Equal(t, before, s.Canvas, "failure must not touch the canvas")
	assert.Equal(t, ErrAnalysisFailed, s.Err)
}

func TestFailurePreservesPriorResult(t *testing.T) {
	s := filledState()
	s, effects := Apply(s, Submit{})
	s, _ = Apply(s, AnalysisSucceeded{Token: effects[1].(StartAnalysis).Token, Result: sampleResult()})

	// Second run fails.
	s, effects = Apply(s, Submit{})
	s, _ = Apply(s, AnalysisFailed{Token: effects[1].(StartAnalysis).Token})

	assert.Equal(t, ViewInput, s.View)
	assert.NotNil(t, s.Result, "prior result survives a failed re-run")
}

func TestStaleCompletionIsDiscarded(t *testing.T) {
	s := filledState()
	s, effects := Apply(s, Submit{})
	staleToken := effects[1].(StartAnalysis).Token

	// User abandons the run and starts over; a new submission follows.
	s, _ = Apply(s, StartNew{})
	s, _ = Apply(s, EditField{Field: canvas.KeyActivities, Value: "নতুন"})
	s, _ = Apply(s, Submit{})

	got, _ := Apply(s, AnalysisSucceeded{Token: staleToken, Result: sampleResult()})
	assert.Equal(t, s, got, "stale success must not change state")

	got, _ = Apply(s, AnalysisFailed{Token: staleToken})
	assert.Equal(t, s, got, "stale failure must not change state")
}

func TestStartNewInvalidatesInFlightAnalysis(t *testing.T) {
	s := filledState()
	s, effects := Apply(s, Submit{})
	token := effects[1].(StartAnalysis).Token

	// User abandons the run without submitting again.
	s, _ = Apply(s, StartNew{})

	got, _ := Apply(s, AnalysisSucceeded{Token: token, Result: sampleResult()})
	assert.Equal(t, s, got, "late success after start-new must not be applied")
	assert.Nil(t, got.Result)
	assert.Equal(t, ViewInput, got.View)

	got, _ = Apply(s, AnalysisFailed{Token: token})
	assert.Equal(t, s, got, "late failure after start-new must not be applied")
}

func TestRestoreInvalidatesInFlightAnalysis(t *testing.T) {
	s := filledState()
	s, effects := Apply(s, Submit{})
	token := effects[1].(StartAnalysis).Token

	item := history.Item{ID: "item-1", Data: canvas.CanvasData{CustomerSegments: "কর্পোরেট"}}
	s, _ = Apply(s, Restore{Item: item})

	got, _ := Apply(s, AnalysisSucceeded{Token: token, Result: sampleResult()})
	assert.Equal(t, s, got, "late success after restore must not be applied")
	assert.Nil(t, got.Result)
}

func TestStartNewClearsEverything(t *testing.T) {
	for _, from := range []View{ViewInput, ViewResult, ViewActionPlan} {
		s := filledState()
		s.View = from
		s.Result = sampleResult()

		s, effects := Apply(s, StartNew{})

		assert.Equal(t, ViewInput, s.View)
		assert.False(t, s.Canvas.NonEmpty())
		assert.Nil(t, s.Result)
		assert.Empty(t, effects)
	}
}

func TestEditModeKeepsCanvasAndResult(t *testing.T) {
	s := filledState()
	s.View = ViewResult
	s.Result = sampleResult()

	s, _ = Apply(s, EditMode{})

	assert.Equal(t, ViewInput, s.View)
	assert.True(t, s.Canvas.NonEmpty())
	assert.NotNil(t, s.Result)
}

func TestReportNavigationRequiresResult(t *testing.T) {
	s := New()

	s, _ = Apply(s, ViewReport{})
	assert.Equal(t, ViewInput, s.View, "no result: view-report is a no-op")

	s, _ = Apply(s, ShowActionPlan{})
	assert.Equal(t, ViewInput, s.View, "no result: view-action-plan is a no-op")

	s.Result = sampleResult()
	s, _ = Apply(s, ViewReport{})
	assert.Equal(t, ViewResult, s.View)

	s, _ = Apply(s, ShowActionPlan{})
	assert.Equal(t, ViewActionPlan, s.View)

	s, _ = Apply(s, Back{})
	assert.Equal(t, ViewResult, s.View)
}

func TestRestoreReplacesCanvasAndClearsResult(t *testing.T) {
	s := filledState()
	s.View = ViewResult
	s.Result = sampleResult()
	s.HistoryOpen = true

	item := history.Item{
		ID:   "item-1",
		Data: canvas.CanvasData{CustomerSegments: "কর্পোরেট ক্লায়েন্ট"},
	}
	s, _ = Apply(s, Restore{Item: item})

	assert.Equal(t, ViewInput, s.View)
	assert.Equal(t, item.Data, s.Canvas)
	assert.Nil(t, s.Result)
	assert.False(t, s.HistoryOpen)
}

func TestSaveDraft(t *testing.T) {
	s := New()
	_, effects := Apply(s, SaveDraft{})
	assert.Empty(t, effects, "empty canvas: nothing to save")

	s = filledState()
	_, effects = Apply(s, SaveDraft{})
	require.Len(t, effects, 1)
	save := effects[0].(SaveHistory)
	assert.Equal(t, s.Canvas, save.Data)
}

func TestHistoryPanelToggle(t *testing.T) {
	s := New()
	s, _ = Apply(s, OpenHistory{})
	assert.True(t, s.HistoryOpen)
	s, _ = Apply(s, CloseHistory{})
	assert.False(t, s.HistoryOpen)
}

func TestGenerationIncreasesPerSubmit(t *testing.T) {
	s := filledState()
	var last uint64
	for i := 0; i < 3; i++ {
		var effects []Effect
		s, effects = Apply(s, Submit{})
		token := effects[1].(StartAnalysis).Token
		assert.Greater(t, token, last)
		last = token
		s, _ = Apply(s, AnalysisFailed{Token: token})
	}
}
