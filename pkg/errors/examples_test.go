package errors_test

import (
	"fmt"

	"github.com/tabfuse/tabfuse/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "source",
		ID:       "inventory",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_configError demonstrates configuration error handling.
func Example_configError() {
	err := errors.NewConfigError("sources[2]", "match_by: at least one column required", nil)

	if errors.IsConfigError(err) {
		fmt.Println(err)
	}

	// Output: configuration error in sources[2]: match_by: at least one column required
}

// Example_ruleError shows how malformed rule patterns surface.
func Example_ruleError() {
	err := errors.NewRuleError("audit", "Serial", `(\d+`, errors.New("missing closing )"))

	fmt.Println(errors.IsRuleError(err))
	fmt.Println(errors.IsValidationError(err))

	// Output:
	// true
	// true
}

// Example_wrapIO demonstrates wrapping I/O failures with context.
func Example_wrapIO() {
	readFile := func() error {
		return errors.New("permission denied")
	}

	if err := errors.WrapIO("read", "data.csv", readFile()); err != nil {
		fmt.Println(err)
	}

	// Output: IO error during read of data.csv: permission denied
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	name := ""
	if name == "" {
		err := &errors.ValidationError{
			Field:   "name",
			Value:   name,
			Message: "source name cannot be empty",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field name: source name cannot be empty
}
