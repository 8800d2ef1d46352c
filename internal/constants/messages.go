package constants

// Admin API messages.
const (
	MsgInvalidRequest = "Invalid request"
	MsgInternalError  = "An internal error occurred"
	MsgUnauthorized   = "Unauthorized"
)

// Console status messages shown to the operator.
const (
	MsgLoadFailed      = "Failed to load links"
	MsgLinkCreated     = "Link created successfully!"
	MsgCodeExists      = "Custom code already exists"
	MsgInvalidInput    = "Invalid input"
	MsgCreateFailedFmt = "Failed to create link (status %d)"
	MsgNetworkError    = "Network or server error"
	MsgLinkDeleted     = "Link deleted"
	MsgDeleteFailed    = "Failed to delete link"
	MsgCopied          = "Short URL copied to clipboard"
	MsgCopyFailed      = "Failed to copy URL"
	MsgInvalidCode     = "Code must be 6-8 alphanumeric characters (A-Z, a-z, 0-9)."
	MsgDeletePromptFmt = "Delete link %s?"
)
