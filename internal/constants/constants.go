package constants

const (
	// Session / context keys
	SessionCookieName = "hub_session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "user_role"

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// Accounts
	MinPasswordLength = 8

	// OTP codes are drawn from [OTPCodeMin, OTPCodeMax]
	OTPCodeMin = 200001
	OTPCodeMax = 899999

	MaxAIGeneratedSubTasks = 20
)
