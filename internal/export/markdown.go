package export

import (
	"fmt"
	"strings"

	"github.com/Roman01-info/bmc-v3/internal/canvas"
)

// RenderMarkdown produces the report as Markdown. The same text drives the
// in-terminal report view and the .md export, so it sticks to plain CommonMark
// plus pipe tables.
func RenderMarkdown(data canvas.CanvasData, result canvas.AnalysisResult, includeInput bool) string {
	var b strings.Builder

	b.WriteString("# বিজনেজ মডেল ক্যানভাস (BMC) রিপোর্ট\n\n")

	if includeInput {
		b.WriteString("## আপনার ইনপুট (BMC Data)\n\n")
		for _, f := range canvas.Fields {
			val := strings.TrimSpace(data.Get(f))
			if val == "" {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", canvas.Labels[f].Label, val)
		}
	}

	b.WriteString("## ওভারভিউ (Overview)\n\n")
	fmt.Fprintf(&b, "**স্কোর:** %.0f/100\n\n", result.OverallScore)
	fmt.Fprintf(&b, "%s\n\n", result.ExecutiveSummary)

	if result.ElevatorPitch != "" {
		b.WriteString("### ইনভেস্টর পিচ (Elevator Pitch)\n\n")
		fmt.Fprintf(&b, "> \"%s\"\n\n", result.ElevatorPitch)
	}

	if len(result.SegmentAnalysis) > 0 {
		b.WriteString("## প্যারামিটার বিশ্লেষণ (Segment Analysis)\n\n")
		b.WriteString("| সেগমেন্ট (Segment) | ফিডব্যাক (Feedback) | স্কোর (Score) |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, seg := range result.SegmentAnalysis {
			fmt.Fprintf(&b, "| %s | %s | %.0f/10 |\n",
				cell(seg.Segment), cell(seg.Feedback), seg.Score)
		}
		b.WriteString("\n")
	}

	b.WriteString("## SWOT অ্যানালাইসিস\n\n")
	writeList(&b, "শক্তিমত্তা (Strengths)", result.SWOT.Strengths)
	writeList(&b, "দুর্বলতা (Weaknesses)", result.SWOT.Weaknesses)
	writeList(&b, "সুযোগ (Opportunities)", result.SWOT.Opportunities)
	writeList(&b, "ঝুঁকি (Threats)", result.SWOT.Threats)

	if len(result.RiskAnalysis) > 0 {
		b.WriteString("## ঝুঁকি বিশ্লেষণ ও সমাধান (Risk Matrix)\n\n")
		b.WriteString("| ঝুঁকি (Risk) | প্রভাব (Impact) | সম্ভাবনা (Prob.) | সমাধান (Mitigation) |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, item := range result.RiskAnalysis {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				cell(item.Risk), cell(item.Impact), cell(item.Probability), cell(item.Mitigation))
		}
		b.WriteString("\n")
	}

	if result.MarketingStrategy.Tagline != "" || len(result.KPIs) > 0 {
		b.WriteString("## মার্কেটিং ও মেট্রিক্স (KPIs)\n\n")
		if result.MarketingStrategy.Tagline != "" {
			fmt.Fprintf(&b, "**ট্যাগলাইন:** %s\n\n", result.MarketingStrategy.Tagline)
		}
		if result.MarketingStrategy.GrowthHack != "" {
			fmt.Fprintf(&b, "**গ্রোথ হ্যাক:** %s\n\n", result.MarketingStrategy.GrowthHack)
		}
		if len(result.MarketingStrategy.TopChannels) > 0 {
			fmt.Fprintf(&b, "**চ্যানেল:** %s\n\n", strings.Join(result.MarketingStrategy.TopChannels, ", "))
		}
		writeList(&b, "সাফল্য পরিমাপক (KPIs)", result.KPIs)
	}

	writeListH2(&b, "পরামর্শ (Suggestions)", result.Suggestions)

	if len(result.DepartmentalActionPlan) > 0 {
		b.WriteString("## অ্যাকশন প্ল্যান (Action Plan)\n\n")
		for _, dept := range result.DepartmentalActionPlan {
			fmt.Fprintf(&b, "### %s\n\n", dept.Department)
			for _, role := range dept.Roles {
				fmt.Fprintf(&b, "**%s**\n\n", role.Role)
				for _, task := range role.Tasks {
					fmt.Fprintf(&b, "- %s\n", task)
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func writeListH2(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

// cell makes a value safe inside a pipe table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
