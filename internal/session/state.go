// Package session holds the application state machine: which view is active,
// the working canvas, the last analysis result and error. Transitions are
// pure functions from (state, event) to (state, effects) so the lifecycle is
// unit-testable without a UI; the view layer executes the returned effects.
package session

import (
	"github.com/Roman01-info/bmc-v3/internal/canvas"
	"github.com/Roman01-info/bmc-v3/internal/history"
)

// View identifies the active screen.
type View int

const (
	ViewInput View = iota
	ViewAnalyzing
	ViewResult
	ViewActionPlan
)

func (v View) String() string {
	switch v {
	case ViewInput:
		return "input"
	case ViewAnalyzing:
		return "analyzing"
	case ViewResult:
		return "result"
	case ViewActionPlan:
		return "action_plan"
	}
	return "unknown"
}

// ErrAnalysisFailed is the single user-facing message for a total analysis
// failure. The underlying cause is logged, never shown.
const ErrAnalysisFailed = "দুঃখিত, এনালাইসিস করতে সমস্যা হচ্ছে। অনুগ্রহ করে আবার চেষ্টা করুন।"

// State is the whole application state for one session.
type State struct {
	View        View
	Canvas      canvas.CanvasData
	Result      *canvas.AnalysisResult
	Err         string
	HistoryOpen bool

	// Generation is the token of the most recent analysis request. A
	// completion event carrying an older token is stale and discarded.
	Generation uint64
}

// New returns the initial state: the input view with an empty canvas.
func New() State {
	return State{View: ViewInput}
}

// Event is a state machine input.
type Event interface{ isEvent() }

type (
	// EditField sets the value of one canvas block.
	EditField struct {
		Field canvas.Field
		Value string
	}

	// Submit requests an analysis of the working canvas. The boundary
	// (view layer) must not emit it while the canvas is empty.
	Submit struct{}

	// AnalysisSucceeded delivers the report for the request with Token.
	AnalysisSucceeded struct {
		Token  uint64
		Result *canvas.AnalysisResult
	}

	// AnalysisFailed reports total failure of the request with Token.
	AnalysisFailed struct {
		Token uint64
	}

	// EditMode returns to the input view keeping canvas and result.
	EditMode struct{}

	// ViewReport shows the stored report, if any.
	ViewReport struct{}

	// ShowActionPlan shows the departmental action plan.
	ShowActionPlan struct{}

	// Back returns from the action plan to the report.
	Back struct{}

	// StartNew resets canvas and result for a fresh plan.
	StartNew struct{}

	// Restore replaces the working canvas with an archived one.
	Restore struct {
		Item history.Item
	}

	// SaveDraft archives the working canvas without analyzing.
	SaveDraft struct{}

	// OpenHistory and CloseHistory toggle the history panel.
	OpenHistory  struct{}
	CloseHistory struct{}
)

func (EditField) isEvent()         {}
func (Submit) isEvent()            {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (EditMode) isEvent()          {}
func (ViewReport) isEvent()        {}
func (ShowActionPlan) isEvent()    {}
func (Back) isEvent()              {}
func (StartNew) isEvent()          {}
func (Restore) isEvent()           {}
func (SaveDraft) isEvent()         {}
func (OpenHistory) isEvent()       {}
func (CloseHistory) isEvent()      {}

// Effect is a side effect the caller must execute after a transition.
// Effects are ordered: SaveHistory always precedes StartAnalysis so a failed
// analysis can never lose the submitted canvas.
type Effect interface{ isEffect() }

type (
	// SaveHistory archives a copy of the canvas.
	SaveHistory struct {
		Data canvas.CanvasData
	}

	// StartAnalysis launches the analysis request identified by Token.
	StartAnalysis struct {
		Token uint64
		Data  canvas.CanvasData
	}
)

func (SaveHistory) isEffect()   {}
func (StartAnalysis) isEffect() {}

// Apply performs one transition. It never mutates its input.
func Apply(s State, e Event) (State, []Effect) {
	switch ev := e.(type) {
	case EditField:
		s.Canvas.Set(ev.Field, ev.Value)
		return s, nil

	case Submit:
		s.View = ViewAnalyzing
		s.Err = ""
		s.Generation++
		return s, []Effect{
			SaveHistory{Data: s.Canvas},
			StartAnalysis{Token: s.Generation, Data: s.Canvas},
		}

	case AnalysisSucceeded:
		if ev.Token != s.Generation {
			return s, nil
		}
		s.View = ViewResult
		s.Result = ev.Result
		return s, nil

	case AnalysisFailed:
		if ev.Token != s.Generation {
			return s, nil
		}
		s.View = ViewInput
		s.Err = ErrAnalysisFailed
		// A result from a prior run is preserved, not cleared.
		return s, nil

	case EditMode:
		s.View = ViewInput
		return s, nil

	case ViewReport:
		if s.Result != nil {
			s.View = ViewResult
		}
		return s, nil

	case ShowActionPlan:
		if s.Result != nil {
			s.View = ViewActionPlan
		}
		return s, nil

	case Back:
		if s.View == ViewActionPlan {
			s.View = ViewResult
		}
		return s, nil

	case StartNew:
		s.View = ViewInput
		s.Canvas = canvas.CanvasData{}
		s.Result = nil
		// Invalidate any in-flight analysis so its completion is stale.
		s.Generation++
		return s, nil

	case Restore:
		s.View = ViewInput
		s.Canvas = ev.Item.Data
		s.Result = nil
		s.HistoryOpen = false
		s.Generation++
		return s, nil

	case SaveDraft:
		if !s.Canvas.NonEmpty() {
			return s, nil
		}
		return s, []Effect{SaveHistory{Data: s.Canvas}}

	case OpenHistory:
		s.HistoryOpen = true
		return s, nil

	case CloseHistory:
		s.HistoryOpen = false
		return s, nil
	}
	return s, nil
}
