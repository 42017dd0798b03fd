package llm

import "fmt"

// TaskType identifies the kind of completion being requested.
type TaskType string

const (
	TaskSchedule TaskType = "schedule"
	TaskSummary  TaskType = "summary"
	TaskQuiz     TaskType = "quiz"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

type LLMConfig struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig targets the hosted Gemini API. MaxRetries is zero: a failed
// call is reported to the caller rather than repeated.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:   ProviderGemini,
		Model:      "gemini-2.5-flash",
		TimeoutMs:  120000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskSchedule: {Temperature: 0.2, MaxTokens: 8192},
			TaskSummary:  {Temperature: 0.4, MaxTokens: 2048, TimeoutMs: 60000},
			TaskQuiz:     {Temperature: 0.3, MaxTokens: 4096, TimeoutMs: 60000},
		},
	}
}

// DefaultOllamaEndpoint is used when the ollama provider has no endpoint.
const DefaultOllamaEndpoint = "http://localhost:11434"

// TaskTimeout returns the effective timeout for a given task type.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("llm: gemini provider requires an api key")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm: model is required")
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("llm: timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("llm: max retries must be >= 0")
	}
	return nil
}
