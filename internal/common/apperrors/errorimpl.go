package apperrors

// appError implements the apperrors.Error interface
type appError struct {
	msg           string
	base          Error
	wrappedErrors []error
	exitcode      int
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by the messages of all wrapped
// errors. Useful when the wrapped errors carry the actionable detail.
func (e *appError) ErrorAll() string {
	if len(e.wrappedErrors) == 0 {
		return e.msg
	}
	msg := e.msg + ":"
	for i, err := range e.wrappedErrors {
		if i > 0 {
			msg += ";"
		}
		msg += " " + err.Error()
	}
	return msg
}

func (e *appError) Unwrap() []error {
	return e.wrappedErrors
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:      msg,
		exitcode: e.exitcode,
		base:     e,
	}
}

// Msg derives a child with a new message. The receiver is not mutated,
// so sentinels stay intact when annotated at call sites.
func (e *appError) Msg(msg string) Error {
	return e.New(msg)
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	child := e.New(msg).(*appError)
	child.wrappedErrors = append(child.wrappedErrors, err...)
	return child
}

func (e *appError) Err(err ...error) Error {
	child := e.New(e.msg).(*appError)
	child.wrappedErrors = append(child.wrappedErrors, err...)
	return child
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetExitCode(code int) Error {
	e.exitcode = code
	return e
}

func (e *appError) ExitCode() int {
	return e.exitcode
}

func New(msg string) Error {
	return &appError{
		msg:  msg,
		base: nil,
	}
}
