package constants

// Error codes used in admin API responses.
// These are the machine-readable codes returned in the "error" field.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"

	// Success codes
	CodeDashboardFound = "DASHBOARD_FOUND"
	CodeLinksFound     = "LINKS_FOUND"
)
