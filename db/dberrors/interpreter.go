package dberrors

// Interpreter generates caller-facing errors using two components:
// - an Analyzer, which is specific to a given driver (mysql, postgres, ...) and classifies its errors
// - an ErrFactory, which generates the final error from the original error and its classification
type Interpreter struct {
	Analyzer   func(error) *ClassifiedError
	ErrFactory func(error, *ClassifiedError) error
}

// Interpret converts an error from a specific db library into a different error type.
// A nil error stays nil.
func (i Interpreter) Interpret(err error) error {
	if err == nil {
		return nil
	}
	return i.ErrFactory(err, i.Analyzer(err))
}
