package export

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

type inputBlock struct {
	Label string
	Value string
}

type reportData struct {
	Input  []inputBlock
	Result canvas.AnalysisResult
}

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateText))

// RenderHTML renders the full standalone report document. The DOCX and PDF
// pipelines both consume this output.
func RenderHTML(data canvas.CanvasData, result canvas.AnalysisResult, includeInput bool) (string, error) {
	td := reportData{Result: result}
	if includeInput {
		for _, f := range canvas.Fields {
			val := strings.TrimSpace(data.Get(f))
			if val == "" {
				continue
			}
			td.Input = append(td.Input, inputBlock{Label: canvas.Labels[f].Label, Value: val})
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, td); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const reportTemplateText = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>BMC Analysis Report</title>
  <style>
    body { font-family: 'Hind Siliguri', sans-serif; font-size: 14pt; line-height: 1.6; max-width: 800px; margin: 2rem auto; }
    h1 { color: #4f46e5; font-size: 24pt; margin-bottom: 20px; text-align: center; }
    h2 { color: #333; font-size: 18pt; margin-top: 30px; border-bottom: 2px solid #eee; padding-bottom: 10px; }
    h3 { font-size: 16pt; }
    h4 { font-size: 14pt; font-weight: bold; }
    p { margin-bottom: 15px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
    th { background-color: #f8fafc; color: #333; }
    .score { font-size: 28pt; font-weight: bold; color: #4f46e5; }
    .pitch { background-color: #f0fdf4; padding: 20px; border-radius: 10px; border: 1px solid #bbf7d0; }
    .pitch p { font-style: italic; font-size: 16pt; }
    .input-block { margin-bottom: 15px; }
    .input-block h3 { color: #4f46e5; margin: 0 0 5px 0; }
    .input-block p { margin: 0; background-color: #f8fafc; padding: 10px; border-radius: 5px; }
    .department { margin-bottom: 20px; border: 1px solid #ddd; padding: 15px; border-radius: 8px; }
    .department h3 { color: #2563eb; margin-top: 0; }
  </style>
</head>
<body>
  <h1>বিজনেজ মডেল ক্যানভাস (BMC) রিপোর্ট</h1>
{{if .Input}}
  <h2>আপনার ইনপুট (BMC Data)</h2>
{{range .Input}}
  <div class="input-block">
    <h3>{{.Label}}</h3>
    <p>{{.Value}}</p>
  </div>
{{end}}
{{end}}
  <h2>ওভারভিউ (Overview)</h2>
  <p><strong>স্কোর:</strong> <span class="score">{{printf "%.0f" .Result.OverallScore}}/100</span></p>
  <p>{{.Result.ExecutiveSummary}}</p>
{{with .Result.ElevatorPitch}}
  <div class="pitch">
    <h3>ইনভেস্টর পিচ (Elevator Pitch)</h3>
    <p>&quot;{{.}}&quot;</p>
  </div>
{{end}}
{{if .Result.SegmentAnalysis}}
  <h2>প্যারামিটার বিশ্লেষণ (Segment Analysis)</h2>
  <table>
    <thead>
      <tr><th>সেগমেন্ট (Segment)</th><th>ফিডব্যাক (Feedback)</th><th>স্কোর (Score)</th></tr>
    </thead>
    <tbody>
{{range .Result.SegmentAnalysis}}
      <tr><td>{{.Segment}}</td><td>{{.Feedback}}</td><td>{{printf "%.0f" .Score}}/10</td></tr>
{{end}}
    </tbody>
  </table>
{{end}}
  <h2>SWOT অ্যানালাইসিস</h2>
  <h3>শক্তিমত্তা (Strengths)</h3>
  <ul>{{range .Result.SWOT.Strengths}}<li>{{.}}</li>{{end}}</ul>
  <h3>দুর্বলতা (Weaknesses)</h3>
  <ul>{{range .Result.SWOT.Weaknesses}}<li>{{.}}</li>{{end}}</ul>
  <h3>সুযোগ (Opportunities)</h3>
  <ul>{{range .Result.SWOT.Opportunities}}<li>{{.}}</li>{{end}}</ul>
  <h3>ঝুঁকি (Threats)</h3>
  <ul>{{range .Result.SWOT.Threats}}<li>{{.}}</li>{{end}}</ul>
{{if .Result.RiskAnalysis}}
  <h2>ঝুঁকি বিশ্লেষণ ও সমাধান (Risk Matrix)</h2>
  <table>
    <thead>
      <tr><th>ঝুঁকি (Risk)</th><th>প্রভাব (Impact)</th><th>সম্ভাবনা (Prob.)</th><th>সমাধান (Mitigation)</th></tr>
    </thead>
    <tbody>
{{range .Result.RiskAnalysis}}
      <tr><td>{{.Risk}}</td><td>{{.Impact}}</td><td>{{.Probability}}</td><td>{{.Mitigation}}</td></tr>
{{end}}
    </tbody>
  </table>
{{end}}
  <h2>মার্কেটিং ও মেট্রিক্স (KPIs)</h2>
  <p><strong>ট্যাগলাইন:</strong> {{with .Result.MarketingStrategy.Tagline}}{{.}}{{else}}N/A{{end}}</p>
  <p><strong>গ্রোথ হ্যাক:</strong> {{with .Result.MarketingStrategy.GrowthHack}}{{.}}{{else}}N/A{{end}}</p>
  <h3>সাফল্য পরিমাপক (KPIs):</h3>
  <ul>{{range .Result.KPIs}}<li>{{.}}</li>{{end}}</ul>
  <h2>পরামর্শ (Suggestions)</h2>
  <ul>{{range .Result.Suggestions}}<li>{{.}}</li>{{end}}</ul>
{{if .Result.DepartmentalActionPlan}}
  <h2>অ্যাকশন প্ল্যান (Action Plan)</h2>
{{range .Result.DepartmentalActionPlan}}
  <div class="department">
    <h3>{{.Department}}</h3>
{{range .Roles}}
    <h4>{{.Role}}</h4>
    <ul>{{range .Tasks}}<li>{{.}}</li>{{end}}</ul>
{{end}}
  </div>
{{end}}
{{end}}
</body>
</html>
`
