package app

// User-facing toast texts.
const (
	MsgWelcomeBack       = "Welcome back!"
	MsgGoogleLogin       = "Google Login Mock"
	MsgSaved             = "Added to Saved Homes"
	MsgUnsaved           = "Removed from Saved"
	MsgPublished         = "Listing published successfully!"
	MsgDescriptionReady  = "Description generated!"
	MsgDescriptionFailed = "Failed to generate description"
	MsgAIUnavailable     = "AI services unavailable. Please check API Key."
	MsgLoggedOut         = "Logged out successfully"
	MsgListingDeleted    = "Listing deleted"
	MsgMessageSent       = "Message sent!"
	MsgSettingsSaved     = "Settings saved!"
	MsgWithdrawal        = "Withdrawal initiated!"
	MsgSupportChat       = "Support chat feature coming soon"
	MsgEditListing       = "Edit mode coming soon"
)
