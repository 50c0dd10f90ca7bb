package presence

import "context"

// ProceedPolicy decides whether generation continues with placeholders when
// Check reports missing sections. It is only consulted for invalid results.
type ProceedPolicy interface {
	Proceed(ctx context.Context, res Result) (bool, error)
}

// PolicyFunc adapts a function to ProceedPolicy.
type PolicyFunc func(ctx context.Context, res Result) (bool, error)

func (f PolicyFunc) Proceed(ctx context.Context, res Result) (bool, error) {
	return f(ctx, res)
}

type alwaysProceed struct{}

func (alwaysProceed) Proceed(context.Context, Result) (bool, error) { return true, nil }

type neverProceed struct{}

func (neverProceed) Proceed(context.Context, Result) (bool, error) { return false, nil }

var (
	// AlwaysProceed fills missing values with placeholders without asking.
	AlwaysProceed ProceedPolicy = alwaysProceed{}
	// NeverProceed aborts whenever a required field is empty.
	NeverProceed ProceedPolicy = neverProceed{}
)

// Question is the confirmation text shown to a person deciding on res.
func Question(res Result) string {
	return "Some sections have missing recommended fields: " + res.Summary() +
		". Continue and insert placeholders for missing information?"
}
