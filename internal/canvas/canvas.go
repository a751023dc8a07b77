// Package canvas defines the Business Model Canvas record and the analysis
// result shapes produced by the AI consultant.
package canvas

import "strings"

// Field identifies one of the nine canvas blocks.
type Field string

const (
	KeyPartners           Field = "keyPartners"
	KeyActivities         Field = "keyActivities"
	KeyResources          Field = "keyResources"
	ValuePropositions     Field = "valuePropositions"
	CustomerRelationships Field = "customerRelationships"
	Channels              Field = "channels"
	CustomerSegments      Field = "customerSegments"
	CostStructure         Field = "costStructure"
	RevenueStreams        Field = "revenueStreams"
)

// Fields lists the nine blocks in canonical display and prompt order.
var Fields = []Field{
	KeyPartners,
	KeyActivities,
	KeyResources,
	ValuePropositions,
	CustomerRelationships,
	Channels,
	CustomerSegments,
	CostStructure,
	RevenueStreams,
}

// CanvasData holds the nine free-text blocks of a Business Model Canvas.
// All fields default to the empty string.
type CanvasData struct {
	KeyPartners           string `json:"keyPartners"`
	KeyActivities         string `json:"keyActivities"`
	KeyResources          string `json:"keyResources"`
	ValuePropositions     string `json:"valuePropositions"`
	CustomerRelationships string `json:"customerRelationships"`
	Channels              string `json:"channels"`
	CustomerSegments      string `json:"customerSegments"`
	CostStructure         string `json:"costStructure"`
	RevenueStreams        string `json:"revenueStreams"`
}

// Get returns the value of the named field, or "" for an unknown field.
func (d CanvasData) Get(f Field) string {
	switch f {
	case KeyPartners:
		return d.KeyPartners
	case KeyActivities:
		return d.KeyActivities
	case KeyResources:
		return d.KeyResources
	case ValuePropositions:
		return d.ValuePropositions
	case CustomerRelationships:
		return d.CustomerRelationships
	case Channels:
		return d.Channels
	case CustomerSegments:
		return d.CustomerSegments
	case CostStructure:
		return d.CostStructure
	case RevenueStreams:
		return d.RevenueStreams
	}
	return ""
}

// Set assigns the value of the named field. Unknown fields are ignored.
func (d *CanvasData) Set(f Field, value string) {
	switch f {
	case KeyPartners:
		d.KeyPartners = value
	case KeyActivities:
		d.KeyActivities = value
	case KeyResources:
		d.KeyResources = value
	case ValuePropositions:
		d.ValuePropositions = value
	case CustomerRelationships:
		d.CustomerRelationships = value
	case Channels:
		d.Channels = value
	case CustomerSegments:
		d.CustomerSegments = value
	case CostStructure:
		d.CostStructure = value
	case RevenueStreams:
		d.RevenueStreams = value
	}
}

// NonEmpty reports whether at least one field contains non-whitespace text.
// Submission is only offered for non-empty canvases.
func (d CanvasData) NonEmpty() bool {
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) != "" {
			return true
		}
	}
	return false
}

// Meta describes how a canvas block is presented to the user.
type Meta struct {
	Label       string
	Description string
}

// Labels carries the bilingual field captions shown on the input form and
// embedded in the export documents.
var Labels = map[Field]Meta{
	KeyPartners:           {Label: "মূল অংশীদার (Key Partners)", Description: "আপনার সরবরাহকারী বা পার্টনার কারা?"},
	KeyActivities:         {Label: "মূল কার্যক্রম (Key Activities)", Description: "ব্যবসা চালাতে কী কী কাজ করতে হবে?"},
	KeyResources:          {Label: "মূল সম্পদ (Key Resources)", Description: "ব্যবসাটির জন্য কী কী রিসোর্স প্রয়োজন?"},
	ValuePropositions:     {Label: "মূল্য প্রস্তাবনা (Value Propositions)", Description: "গ্রাহক কেন আপনার পণ্য কিনবে?"},
	CustomerRelationships: {Label: "গ্রাহক সম্পর্ক (Customer Relationships)", Description: "গ্রাহকদের সাথে সম্পর্ক কেমন হবে?"},
	Channels:              {Label: "চ্যানেল (Channels)", Description: "পণ্য বা সেবা কীভাবে গ্রাহকের কাছে পৌঁছাবে?"},
	CustomerSegments:      {Label: "গ্রাহক বিভাগ (Customer Segments)", Description: "আপনার লক্ষ্য গ্রাহক কারা?"},
	CostStructure:         {Label: "ব্যয় কাঠামো (Cost Structure)", Description: "প্রধান খরচগুলো কী কী?"},
	RevenueStreams:        {Label: "আয়ের উৎস (Revenue Streams)", Description: "টাকা কীভাবে আসবে?"},
}
