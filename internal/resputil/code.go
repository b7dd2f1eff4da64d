package resputil

type ErrorCode int

const (
	OK ErrorCode = 0

	// General
	InvalidRequest ErrorCode = 40001

	// Token
	TokenExpired ErrorCode = 40101
	TokenInvalid ErrorCode = 40102

	// Login
	InvalidCredentials ErrorCode = 40106

	// User is not allowed to access the resource
	UserNotAllowed ErrorCode = 40301

	// Entity id has no matching row
	NotFound ErrorCode = 40401

	// Server side misconfiguration (e.g. missing signing secret)
	ConfigError ErrorCode = 50001

	// Third-party storage call failure
	UpstreamError ErrorCode = 50002

	// Indicates laziness of the developer
	// Frontend will directly print the message without any translation
	NotSpecified ErrorCode = 99999
)
