package service

import (
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/intelligence"
	"github.com/alexanderramin/studyplan/internal/llm"
	"github.com/google/uuid"
)

// DefaultSessionTopic is used when a proposed session carries no topic.
const DefaultSessionTopic = "Review"

const (
	reasonUnknownSubject = "unknown subject"
	reasonNotObject      = "entry is not an object"
	reasonBadStart       = "malformed start_time"
	reasonBadEnd         = "malformed end_time"
	reasonEndBeforeStart = "end_time is not after start_time"
)

// resolveProposals turns untrusted records into sessions owned by userID.
// Records are handled independently; each rejected record yields one warning.
// subjects must be ordered so that the preferred match for a name comes first.
func resolveProposals(records []llm.Record, subjects []*domain.Subject, userID string, loc *time.Location, now time.Time) ([]*domain.StudySession, []ResolutionWarning) {
	var (
		sessions []*domain.StudySession
		warnings []ResolutionWarning
	)
	reject := func(i int, name, reason string) {
		warnings = append(warnings, ResolutionWarning{Index: i, SubjectName: name, Reason: reason})
	}

	for i, rec := range records {
		if !rec.IsObject() {
			reject(i, "", reasonNotObject)
			continue
		}

		name, _ := rec.String("subject_name")
		name = strings.TrimSpace(name)
		subject := matchSubject(subjects, name)
		if subject == nil {
			reject(i, name, reasonUnknownSubject)
			continue
		}

		start, ok := parseProposalTime(rec, "start_time", loc)
		if !ok {
			reject(i, name, reasonBadStart)
			continue
		}
		end, ok := parseProposalTime(rec, "end_time", loc)
		if !ok {
			reject(i, name, reasonBadEnd)
			continue
		}
		if !end.After(start) {
			reject(i, name, reasonEndBeforeStart)
			continue
		}

		topic, _ := rec.String("topic")
		if strings.TrimSpace(topic) == "" {
			topic = DefaultSessionTopic
		}

		sessions = append(sessions, &domain.StudySession{
			ID:          uuid.New().String(),
			UserID:      userID,
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			StartAt:     start,
			EndAt:       end,
			Topic:       topic,
			CreatedAt:   now.UTC(),
		})
	}
	return sessions, warnings
}

// matchSubject returns the first subject whose name equals name ignoring case.
func matchSubject(subjects []*domain.Subject, name string) *domain.Subject {
	if name == "" {
		return nil
	}
	for _, s := range subjects {
		if s.MatchesName(name) {
			return s
		}
	}
	return nil
}

func parseProposalTime(rec llm.Record, key string, loc *time.Location) (time.Time, bool) {
	raw, ok := rec.String(key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(intelligence.PromptTimeLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
