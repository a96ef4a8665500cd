package coach

import (
	"context"
	"fmt"
	"strings"

	"lakshya-career-assistant/internal/domain/ports/adapter"
)

var _ Provider = (*KeywordCoach)(nil)

// KeywordCoach is the offline fallback: it buckets the message by career
// topic and answers with a canned tip. It never fails, which makes it the
// terminal entry of any provider cascade.
type KeywordCoach struct {
	user string
}

func NewKeywordCoach(user string) *KeywordCoach {
	if user == "" {
		user = "there"
	}
	return &KeywordCoach{user: user}
}

func (k *KeywordCoach) Respond(ctx context.Context, message string) (string, error) {
	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, "resume", "cv"):
		return "I'd love to help optimize your resume! 📄 Focus on ATS-friendly formatting, quantified achievements, and relevant keywords. For detailed AI analysis, connect a model backend.", nil
	case containsAny(msg, "job", "position", "role"):
		return "Great question about job opportunities! 🎯 Focus on companies that value your tech stack. I'll provide personalized job matches once the AI service is running!", nil
	case containsAny(msg, "salary", "pay", "negotiate"):
		return "Salary negotiation is crucial! 💰 Research market rates, document your impact, and practice your pitch. I'll give you specific strategies once AI is connected!", nil
	case containsAny(msg, "skill", "learn", "develop"):
		return "Skill development is key! Focus on emerging technologies like AI/ML and cloud platforms. Let's create a personalized path when AI reconnects!", nil
	default:
		return fmt.Sprintf("Hi %s! I'm your AI Career Coach, ready to help! 🚀 I can assist with resume optimization, job search, salary negotiation, and skill development.", k.user), nil
	}
}

func (k *KeywordCoach) Status(ctx context.Context) adapter.ModelInfo {
	return adapter.ModelInfo{
		Status:  "offline",
		Message: "Serving canned guidance; connect a model backend for full AI responses.",
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
