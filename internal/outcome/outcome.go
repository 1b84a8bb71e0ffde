package outcome

// Status classifies an Outcome. Values match the HTTP status they render as.
type Status int

const (
	StatusOK            Status = 200
	StatusCreated       Status = 201
	StatusBadRequest    Status = 400
	StatusInternalError Status = 500
)

// Outcome is the result of one pipeline stage. Success outcomes carry Data,
// failure outcomes carry Message; never both.
type Outcome[T any] struct {
	Status  Status
	Data    T
	Message string
}

// OK returns a 200 outcome.
func OK[T any](data T) Outcome[T] {
	return Outcome[T]{Status: StatusOK, Data: data}
}

// Created returns a 201 outcome.
func Created[T any](data T) Outcome[T] {
	return Outcome[T]{Status: StatusCreated, Data: data}
}

// BadRequest returns a 400 outcome with the given message.
func BadRequest[T any](msg string) Outcome[T] {
	return Outcome[T]{Status: StatusBadRequest, Message: msg}
}

// InternalError returns a 500 outcome with the given message.
func InternalError[T any](msg string) Outcome[T] {
	return Outcome[T]{Status: StatusInternalError, Message: msg}
}

// IsSuccess reports whether the outcome is in a success class.
func (o Outcome[T]) IsSuccess() bool { return o.Status < 400 }

// Fail carries a failing outcome over to another payload type so the next
// stage can short-circuit with the same status and message.
func Fail[U, T any](o Outcome[T]) Outcome[U] {
	return Outcome[U]{Status: o.Status, Message: o.Message}
}
