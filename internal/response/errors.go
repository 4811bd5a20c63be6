package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrConflict      ErrCode = "CONFLICT"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrNoQuestions   ErrCode = "NO_QUESTIONS"
	ErrResultMissing ErrCode = "RESULT_NOT_FOUND"

	// ─── Exam attempts ─────────────────────────────────────────────────
	ErrAlreadySubmitted ErrCode = "ALREADY_SUBMITTED"
	ErrEmptySubmission  ErrCode = "EMPTY_SUBMISSION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrNoQuestions:
		return "This exam has no questions assigned."
	case ErrResultMissing:
		return "No result found for this exam."

	// ─── Exam attempts ─────────────────────────────────────────────────
	case ErrAlreadySubmitted:
		return "This exam has already been submitted. View your existing result instead."
	case ErrEmptySubmission:
		return "Cannot submit an exam with no answers."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
