package usecase

// DomainError is an expected, user-facing outcome (validation failure,
// unknown lead, scoring failure). The boundary layer maps Code to a status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is a fault (database down, broker unreachable). The boundary
// layer translates it into a generic failure response.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// Domain error codes
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeLeadNotFound  = "LEAD_NOT_FOUND"
	CodeScoringFailed = "SCORING_FAILED"
	CodeInvalidStage  = "INVALID_STAGE"
	CodeMailFailed    = "MAIL_FAILED"
)

func NewLeadNotFoundError(id string) *DomainError {
	return &DomainError{Code: CodeLeadNotFound, Message: "lead not found: " + id}
}
