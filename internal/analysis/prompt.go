package analysis

import (
	"fmt"
	"strings"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

// fallbackSuffix is appended to the prompt on the unconstrained second
// attempt, when the service cannot be held to a response schema.
const fallbackSuffix = "\n\nRETURN ONLY VALID JSON. Do not include markdown formatting like ```json"

// BuildPrompt assembles the consultant prompt: the nine canvas blocks
// verbatim, the fixed departmental role assignments, and the expected output
// shape. All generated text is requested in Bengali regardless of the input
// language.
func BuildPrompt(data canvas.CanvasData) string {
	var sb strings.Builder

	sb.WriteString(`Analyze the following Business Model Canvas (BMC) data provided in Bengali/English.
Act as a world-class business consultant.
Provide the output strictly in Bengali language (Bangla).

Data:
`)
	fmt.Fprintf(&sb, "- Key Partners: %s\n", data.KeyPartners)
	fmt.Fprintf(&sb, "- Key Activities: %s\n", data.KeyActivities)
	fmt.Fprintf(&sb, "- Key Resources: %s\n", data.KeyResources)
	fmt.Fprintf(&sb, "- Value Propositions: %s\n", data.ValuePropositions)
	fmt.Fprintf(&sb, "- Customer Relationships: %s\n", data.CustomerRelationships)
	fmt.Fprintf(&sb, "- Channels: %s\n", data.Channels)
	fmt.Fprintf(&sb, "- Customer Segments: %s\n", data.CustomerSegments)
	fmt.Fprintf(&sb, "- Cost Structure: %s\n", data.CostStructure)
	fmt.Fprintf(&sb, "- Revenue Streams: %s\n", data.RevenueStreams)

	sb.WriteString(`
**Instruction for Action Plan:**
Create a detailed Action Plan assigning specific tasks to the following roles based on the business analysis:

1. **Management (ব্যবস্থাপনা):**
   - **Managing Director/CEO:** Strategy, Vision, Budget monitoring.

2. **Marketing & Sales (মার্কেটিং ও বিক্রয়):**
   - **Marketing Manager:** Branding, Digital Campaigns (SEO/SEM), Offline marketing.
   - **Sales Team Lead:** Customer communication, Closing sales, Corporate clients.

3. **Operations (অপারেশন):**
   - **Operations Manager:** Logistics, Supplier contracts.
   - **Tour Coordinator / Agent:** Booking, Itinerary, Visa processing.
   - **Customer Service Officer:** Inquiries, Problem solving.

4. **Finance (অর্থ ও হিসাব):**
   - **Finance Manager:** Budgeting, Accounts, Profitability check.

5. **Technology (প্রযুক্তি):**
   - **IT Administrator:** Website, CRM maintenance.

Provide a JSON response with the following structure:
{
  "overallScore": number (0-100),
  "executiveSummary": "string",
  "swot": {
    "strengths": ["string"],
    "weaknesses": ["string"],
    "opportunities": ["string"],
    "threats": ["string"]
  },
  "suggestions": ["string"],
  "segmentAnalysis": [
    { "segment": "string", "feedback": "string", "score": number }
  ],
  "riskAnalysis": [
    { "risk": "string", "impact": "High/Medium/Low", "probability": "High/Medium/Low", "mitigation": "string (How to solve)" }
  ],
  "kpis": ["string (Key metrics to track success, e.g. CAC, LTV)"],
  "marketingStrategy": {
    "tagline": "string (A catchy slogan in Bangla)",
    "topChannels": ["string"],
    "growthHack": "string (One specific creative idea to grow fast)"
  },
  "elevatorPitch": "string (A 30-second persuasive pitch for investors in Bangla)",
  "departmentalActionPlan": [
    {
       "department": "string (e.g. Marketing & Sales)",
       "roles": [
          {
            "role": "string (e.g. Marketing Manager)",
            "tasks": ["string (Specific actionable todo item)"]
          }
       ]
    }
  ]
}
`)

	return sb.String()
}
