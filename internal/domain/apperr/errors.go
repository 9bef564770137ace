// Package apperr defines the application error taxonomy shared by the
// service, the persistence layer, and the HTTP boundary. Each error carries
// the HTTP status it maps to and a stable business code, so handlers never
// leak driver or library detail to clients.
package apperr

// Error is an application-level error with an HTTP mapping.
type Error struct {
	status  int
	code    string
	message string
}

// New creates an application error.
func New(status int, code, message string) *Error {
	return &Error{status: status, code: code, message: message}
}

// Error implements the error interface.
func (e *Error) Error() string { return e.message }

// Status returns the HTTP status code this error maps to.
func (e *Error) Status() int { return e.status }

// Code returns the stable business error code.
func (e *Error) Code() string { return e.code }

// Predefined error values
var (
	// ErrValidation covers missing or malformed required fields.
	ErrValidation = New(400, "VALIDATION_FAILED", "invalid payload")

	// ErrDuplicateEmail and ErrDuplicateCPF are uniqueness violations.
	// Both render as 400 like any other bad create/update, with distinct
	// codes so clients can tell the cases apart.
	ErrDuplicateEmail = New(400, "EMAIL_TAKEN", "email already registered")
	ErrDuplicateCPF   = New(400, "CPF_TAKEN", "cpf already registered")

	ErrUserNotFound = New(404, "USER_NOT_FOUND", "user not found")

	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = New(401, "INVALID_CREDENTIALS", "invalid credentials")

	// Auth gate failures: absent credential vs failed verification.
	ErrMissingToken = New(401, "MISSING_TOKEN", "missing access token")
	ErrInvalidToken = New(403, "INVALID_TOKEN", "invalid or expired token")
)
