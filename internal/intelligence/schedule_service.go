package intelligence

import (
	"context"

	"github.com/alexanderramin/studyplan/internal/llm"
)

// Proposal is the oracle's schedule, extracted but not yet trusted.
type Proposal struct {
	Records []llm.Record
	Raw     string
	Model   string
}

// SchedulePlanner asks the oracle for a schedule.
type SchedulePlanner interface {
	// Propose builds the prompt, calls the oracle once and extracts records.
	// Failures are *GenerationError values.
	Propose(ctx context.Context, in ScheduleInput) (*Proposal, error)
}

type schedulePlanner struct {
	client llm.LLMClient
}

func NewSchedulePlanner(client llm.LLMClient) SchedulePlanner {
	return &schedulePlanner{client: client}
}

func (p *schedulePlanner) Propose(ctx context.Context, in ScheduleInput) (*Proposal, error) {
	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: scheduleSystemPrompt,
		UserPrompt:   BuildSchedulePrompt(in),
	})
	if err != nil {
		return nil, &GenerationError{Stage: StageOracle, Err: err}
	}

	records, err := llm.ExtractRecords(resp.Text)
	if err != nil {
		return nil, &GenerationError{Stage: StageExtract, Raw: resp.Text, Err: err}
	}
	return &Proposal{Records: records, Raw: resp.Text, Model: resp.Model}, nil
}
