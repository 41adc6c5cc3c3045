package segmentation

import "fmt"

// InputError represents unusable resume input, such as empty text
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid resume input: %s", e.Message)
}
