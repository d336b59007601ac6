package apperrors

// Error is the error type used across forcingval. Errors form trees:
// package-level sentinels are created with New, and call sites derive
// annotated children with New, Msg or MsgErr. errors.Is reports true for
// every base in the derivation chain, so callers can classify an error
// without parsing its message.
type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExitCode(code int) Error
	ExitCode() int
}
