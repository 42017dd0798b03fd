package intelligence

import "fmt"

// Stage names the step of a generation pipeline that failed.
type Stage string

const (
	StageOracle  Stage = "oracle"
	StageExtract Stage = "extract"
)

// GenerationError reports which stage failed. Raw carries the model text
// when extraction failed, for diagnostics only.
type GenerationError struct {
	Stage Stage
	Raw   string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
