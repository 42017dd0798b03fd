package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for one completion call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the raw text of a completion.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient is the completion oracle: prompt in, unstructured text out.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend answers a cheap probe.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return NewGeminiClient(ctx, cfg, observer)
	}
}

// attemptFunc performs one backend call and returns its text and model.
type attemptFunc func(ctx context.Context) (text, model string, err error)

// callWithPolicy applies the shared timeout, attempt budget, empty-output
// check and observer reporting around a provider-specific attempt.
func callWithPolicy(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TaskTimeout(task))*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 0
	for attempts < 1+cfg.MaxRetries {
		attempts++
		text, model, err := attempt(ctx)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyOutput
		}
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task: task, Provider: cfg.Provider, Model: cfg.Model,
				LatencyMs: latency, Attempts: attempts, Success: true,
			})
			if model == "" {
				model = cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	var err error
	switch {
	case ctx.Err() != nil:
		err = ErrTimeout
	case isConnectionError(lastErr):
		err = fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	case errors.Is(lastErr, ErrEmptyOutput):
		err = ErrEmptyOutput
	default:
		err = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	observer.OnCallComplete(LLMCallEvent{
		Task: task, Provider: cfg.Provider, Model: cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(), Attempts: attempts,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func resolveParams(cfg LLMConfig, req GenerateRequest) (float64, int) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyOutput):
		return "EMPTY"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

func observerOrNoop(o Observer) Observer {
	if o == nil {
		return NoopObserver{}
	}
	return o
}
