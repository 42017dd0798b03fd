package intelligence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// PromptTimeLayout is the wall-clock format used in prompts and expected
// back in start_time and end_time.
const PromptTimeLayout = "2006-01-02 15:04"

const (
	noExamDate        = "No exam date"
	noAvailabilityMsg = "The user has NOT provided specific availability. Please create a balanced schedule."
)

const scheduleSystemPrompt = `You are an expert study planner. You turn a student's subjects and free time into a concrete study schedule and reply with JSON only.`

// ScheduleInput is everything the schedule prompt is built from.
type ScheduleInput struct {
	Now         time.Time
	Config      domain.ScheduleConfig
	Subjects    []*domain.Subject
	Slots       []domain.AvailabilitySlot
	HorizonDays int
}

type promptSubject struct {
	Name       string `json:"name"`
	Difficulty string `json:"difficulty"`
	ExamDate   string `json:"exam_date"`
}

// BuildSchedulePrompt renders the scheduling request. Times are rendered in
// in.Now's location. The output depends only on its input.
func BuildSchedulePrompt(in ScheduleInput) string {
	loc := in.Now.Location()
	horizon := in.HorizonDays
	if horizon <= 0 {
		horizon = 5
	}

	subjects := make([]promptSubject, 0, len(in.Subjects))
	for _, s := range in.Subjects {
		exam := noExamDate
		if s.ExamAt != nil {
			exam = s.ExamAt.In(loc).Format(PromptTimeLayout)
		}
		subjects = append(subjects, promptSubject{
			Name:       s.Name,
			Difficulty: s.Difficulty.Label(),
			ExamDate:   exam,
		})
	}
	subjectsJSON := marshalVerbatim(subjects)

	var b strings.Builder
	b.WriteString("Create a study schedule for a student.\n\n")
	fmt.Fprintf(&b, "Current Date/Time: %s (Do NOT schedule anything before this time).\n\n", in.Now.Format(PromptTimeLayout))

	b.WriteString("Configuration:\n")
	fmt.Fprintf(&b, "- Session Duration: %d minutes per session.\n", in.Config.SessionDurationMin)
	fmt.Fprintf(&b, "- Break Duration: %d minutes between sessions.\n\n", in.Config.BreakDurationMin)

	b.WriteString("Subjects to study (Source of Truth):\n")
	b.Write(subjectsJSON)
	b.WriteString("\n\n")

	b.WriteString("Availability Constraints:\n")
	if len(in.Slots) == 0 {
		b.WriteString(noAvailabilityMsg)
	} else {
		labels := make([]string, 0, len(in.Slots))
		for _, slot := range in.Slots {
			labels = append(labels, slot.Label())
		}
		labelsJSON := marshalVerbatim(labels)
		b.WriteString("User's available slots: ")
		b.Write(labelsJSON)
	}
	b.WriteString("\n\n")

	b.WriteString("Instructions:\n")
	fmt.Fprintf(&b, "1. Plan for the next %d days only.\n", horizon)
	b.WriteString("2. Return the output STRICTLY as a JSON Array.\n")
	b.WriteString("3. Date format MUST be \"YYYY-MM-DD HH:MM\".\n")
	b.WriteString("4. CRITICAL: You MUST use the EXACT subject name provided in the 'Subjects to study' list.\n")
	b.WriteString("   - Do NOT paraphrase (e.g., do not change \"History of Art\" to \"Art History\").\n")
	b.WriteString("   - Do NOT abbreviate.\n")
	b.WriteString("   - Copy the name string exactly character-by-character.\n\n")

	b.WriteString("JSON Format required:\n")
	b.WriteString(`[
    {
        "subject_name": "Subject Name Here (EXACT MATCH ONLY)",
        "start_time": "YYYY-MM-DD HH:MM",
        "end_time": "YYYY-MM-DD HH:MM",
        "topic": "Topic to read"
    }
]`)
	b.WriteString("\n")

	return b.String()
}

// marshalVerbatim encodes v without HTML escaping so names reach the model
// exactly as stored.
func marshalVerbatim(v any) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return bytes.TrimRight(buf.Bytes(), "\n")
}
