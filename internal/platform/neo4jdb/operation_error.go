package neo4jdb

import "fmt"

type OperationErrorCode string

const (
	OperationErrorValidation OperationErrorCode = "validation_failed"
	OperationErrorConnect    OperationErrorCode = "connect_failed"
	OperationErrorSchema     OperationErrorCode = "schema_failed"
	OperationErrorWrite      OperationErrorCode = "write_failed"
	OperationErrorRead       OperationErrorCode = "read_failed"
	OperationErrorTimeout    OperationErrorCode = "timeout"
)

type OperationError struct {
	Code      OperationErrorCode
	Operation string
	Message   string
	Cause     error
}

func (e *OperationError) Error() string {
	if e == nil {
		return "neo4j operation failed"
	}
	if e.Message != "" {
		return fmt.Sprintf(
			"neo4j operation failed (op=%s code=%s): %s",
			e.Operation,
			e.Code,
			e.Message,
		)
	}
	if e.Cause != nil {
		return fmt.Sprintf(
			"neo4j operation failed (op=%s code=%s): %v",
			e.Operation,
			e.Code,
			e.Cause,
		)
	}
	return fmt.Sprintf(
		"neo4j operation failed (op=%s code=%s)",
		e.Operation,
		e.Code,
	)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func OpErr(op string, code OperationErrorCode, msg string, cause error) error {
	return &OperationError{
		Code:      code,
		Operation: op,
		Message:   msg,
		Cause:     cause,
	}
}
