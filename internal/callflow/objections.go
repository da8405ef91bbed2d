package callflow

import (
	"fmt"
	"strings"
)

// objectionTables holds the rebuttal buckets keyed by category and sub-case.
type objectionTables struct {
	BudgetNoBudget   []string
	BudgetNotInCycle []string

	TimeTooBusy  []string
	TimeInMiddle []string

	TrustSalesCall  []string
	TrustHowGotInfo []string

	CompetitionHaveSolution []string

	InterestNotInterested []string
	InterestSendInfo      []string
}

func defaultObjectionTables() *objectionTables {
	return &objectionTables{
		BudgetNoBudget: []string{
			"I totally get that. This is just an exploration call—no commitments. If there's value, we can discuss timing that works.",
			"Makes sense. That's exactly why this discovery call is helpful—to see if the ROI justifies future budget.",
			"I understand budget constraints. Many clients started this conversation the same way.",
		},
		BudgetNotInCycle: []string{
			"Perfect timing then—this gives you information for your next cycle.",
			"That's actually ideal. We can explore the value now and align with your planning timeline.",
			"Great point. This conversation helps you prepare for when the budget opens up.",
		},
		TimeTooBusy: []string{
			"I completely understand. That's actually why we exist—to give busy professionals like you time back.",
			"I hear you. When things calm down, having better tools becomes even more valuable.",
			"Makes total sense. What about next week—would Tuesday or Wednesday afternoon work better?",
		},
		TimeInMiddle: []string{
			"Of course, I can hear you're focused. Should I call back in an hour or later today?",
			"I understand—bad timing on my part. Tomorrow morning or afternoon better?",
			"No problem at all. When would be a better time to connect?",
		},
		TrustSalesCall: []string{
			"I get it—you probably get a lot of these. I'm actually trying to save you time by connecting you directly with someone who can show real value.",
			"Fair point. I'm not here to pitch you today—just to see if a conversation with our expert makes sense.",
			"I understand. That's why I want to connect you with someone who can actually help, not just talk.",
		},
		TrustHowGotInfo: []string{
			"We research companies who might benefit from what we do. Your name came up as someone involved in these initiatives.",
			"Good question. We identify professionals who might find value in our platform.",
			"We focus on teams who might benefit from streamlined solutions.",
		},
		CompetitionHaveSolution: []string{
			"That's great—many of our clients actually use both solutions for different purposes.",
			"Good choice. The question is whether you're getting everything you need from it.",
			"Interesting. Most teams find we complement their existing tools nicely.",
		},
		InterestNotInterested: []string{
			"I appreciate your directness. Let me ask—what if I told you this could cut your monthly reporting time by 60%?",
			"I understand. Many felt the same way before seeing the demo. What's your biggest headache right now?",
			"Fair enough. Even just learning what's possible might be valuable for future reference.",
		},
		InterestSendInfo: []string{
			"Absolutely, I'll email over a short overview. While I have you, could we pencil 15 minutes with the SME so the material is most relevant?",
			"Of course. I find the information is most valuable when you can ask questions directly. How about a brief call next week?",
			"Sure thing. The material really comes to life in a conversation though—would a quick call make sense?",
		},
	}
}

// ObjectionHandler resolves a prospect objection to a contextual rebuttal.
// Category resolution is first-match-wins over substring probes in a fixed
// order; the handler never advances the call stage, so the conversation stays
// parked where the objection was raised.
type ObjectionHandler struct {
	tables    *objectionTables
	templates *TemplateSet
	selector  TemplateSelector
	fallbackQ string
}

// NewObjectionHandler builds a handler over the stock rebuttal tables.
func NewObjectionHandler(templates *TemplateSet, selector TemplateSelector, fallbackQuestion string) *ObjectionHandler {
	return &ObjectionHandler{
		tables:    defaultObjectionTables(),
		templates: templates,
		selector:  selector,
		fallbackQ: fallbackQuestion,
	}
}

// Handle returns a rebuttal for the utterance. The probe order below is a
// deliberate tie-break: "not interested" lands in the trust bucket, not the
// interest bucket, because trust probes run first.
func (h *ObjectionHandler) Handle(utterance string) string {
	lower := strings.ToLower(utterance)

	switch {
	case containsAny(lower, []string{"budget", "expensive", "cost", "money"}):
		if strings.Contains(lower, "no budget") {
			return h.selector.Choose(h.tables.BudgetNoBudget)
		}
		return h.selector.Choose(h.tables.BudgetNotInCycle)

	case containsAny(lower, []string{"busy", "time", "rush"}):
		if strings.Contains(lower, "too busy") {
			return h.selector.Choose(h.tables.TimeTooBusy)
		}
		return h.selector.Choose(h.tables.TimeInMiddle)

	case containsAny(lower, []string{"sales call", "not interested", "skeptical"}):
		return h.selector.Choose(h.tables.TrustSalesCall)

	case containsAny(lower, []string{"get my number", "got my number", "get my info"}):
		return h.selector.Choose(h.tables.TrustHowGotInfo)

	case containsAny(lower, []string{"already have", "using", "current solution"}):
		return h.selector.Choose(h.tables.CompetitionHaveSolution)

	case strings.Contains(lower, "send info") || strings.Contains(lower, "email me"):
		return h.selector.Choose(h.tables.InterestSendInfo)

	case strings.Contains(lower, "not interested"):
		return h.selector.Choose(h.tables.InterestNotInterested)
	}

	return fmt.Sprintf("%s %s let me ask you this—%s",
		h.selector.Choose(h.templates.Acknowledgments),
		h.selector.Choose(h.templates.Transitions),
		h.fallbackQ)
}
