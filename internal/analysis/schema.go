package analysis

// ResultSchema declares the response schema for the structured attempt. It
// mirrors canvas.AnalysisResult field for field, with enumerated literal
// sets for risk impact and probability.
func ResultSchema() map[string]any {
	stringList := func() map[string]any {
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	}
	levelEnum := func() map[string]any {
		return map[string]any{
			"type": "string",
			"enum": []string{"High", "Medium", "Low"},
		}
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overallScore":     map[string]any{"type": "number"},
			"executiveSummary": map[string]any{"type": "string"},
			"swot": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"strengths":     stringList(),
					"weaknesses":    stringList(),
					"opportunities": stringList(),
					"threats":       stringList(),
				},
				"required": []string{"strengths", "weaknesses", "opportunities", "threats"},
			},
			"suggestions": stringList(),
			"segmentAnalysis": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"segment":  map[string]any{"type": "string"},
						"feedback": map[string]any{"type": "string"},
						"score":    map[string]any{"type": "number"},
					},
					"required": []string{"segment", "feedback", "score"},
				},
			},
			"riskAnalysis": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"risk":        map[string]any{"type": "string"},
						"impact":      levelEnum(),
						"probability": levelEnum(),
						"mitigation":  map[string]any{"type": "string"},
					},
					"required": []string{"risk", "impact", "probability", "mitigation"},
				},
			},
			"kpis": stringList(),
			"marketingStrategy": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"tagline":     map[string]any{"type": "string"},
					"topChannels": stringList(),
					"growthHack":  map[string]any{"type": "string"},
				},
				"required": []string{"tagline", "topChannels", "growthHack"},
			},
			"elevatorPitch": map[string]any{"type": "string"},
			"departmentalActionPlan": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"department": map[string]any{"type": "string"},
						"roles": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"role":  map[string]any{"type": "string"},
									"tasks": stringList(),
								},
								"required": []string{"role", "tasks"},
							},
						},
					},
					"required": []string{"department", "roles"},
				},
			},
		},
		"required": []string{
			"overallScore", "executiveSummary", "swot", "suggestions",
			"segmentAnalysis", "riskAnalysis", "kpis", "marketingStrategy",
			"elevatorPitch", "departmentalActionPlan",
		},
	}
}
