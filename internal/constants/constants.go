package constants

const (
	// DefaultBcryptCost is used when no cost is configured.
	DefaultBcryptCost = 8

	// Context keys set by the auth middleware.
	ContextKeyUser  = "user"
	ContextKeyToken = "token"

	// DateTimeLayout formats timestamps as DD-MM-YYYY HH:mm:ss.
	DateTimeLayout = "02-01-2006 15:04:05"

	// AllDevicesQuery is the logout query flag that revokes every session.
	AllDevicesQuery = "all_devices"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Response messages.
const (
	MessageHome       = "Vetting Experimental API"
	MessageLoggedOut  = "Successfully logged out."
	MessageNoEndpoint = "Endpoint not found."
)
