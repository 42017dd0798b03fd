package intelligence

import (
	"fmt"
	"strings"
)

// DefaultTopic stands in for a session without a topic.
const DefaultTopic = "General concepts"

const tutorSystemPrompt = `You are a helpful tutor for a university student.`

// QuizQuestionCount is the number of questions requested per quiz.
const QuizQuestionCount = 5

func topicOrDefault(topic string) string {
	if t := strings.TrimSpace(topic); t != "" {
		return t
	}
	return DefaultTopic
}

// BuildSummaryPrompt asks for a short HTML bullet summary.
func BuildSummaryPrompt(subject, topic, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the key takeaways for the topic: %q in the subject: %q.\n\n", topicOrDefault(topic), subject)
	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. Summarize in %s.\n", language)
	b.WriteString("2. Keep it concise (around 3-5 bullet points).\n")
	b.WriteString("3. Make it encouraging.\n")
	b.WriteString("4. Use HTML tags for formatting (e.g., <ul>, <li>, <strong>).\n\n")
	b.WriteString(`Example Output format:
<ul>
    <li><strong>Point 1:</strong> Detail...</li>
    <li><strong>Point 2:</strong> Detail...</li>
</ul>
<p>Keep up the good work!</p>
`)
	return b.String()
}

// BuildQuizPrompt asks for QuizQuestionCount four-option questions as a JSON array.
func BuildQuizPrompt(subject, topic, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a multiple-choice quiz for the subject %q, topic: %q.\n\n", subject, topicOrDefault(topic))
	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. Create exactly %d questions.\n", QuizQuestionCount)
	fmt.Fprintf(&b, "2. Language: %s.\n", language)
	b.WriteString("3. Difficulty: Moderate.\n")
	b.WriteString("4. Each question has exactly 4 options and correct_index is the 0-based index of the right option.\n")
	b.WriteString("5. Return ONLY a JSON Array. No Markdown. No Intro text.\n\n")
	b.WriteString(`JSON Format Example:
[
    {
        "question": "Question?",
        "options": ["A", "B", "C", "D"],
        "correct_index": 0
    }
]
`)
	return b.String()
}
