package handler

// responseCode is the stable, client-facing outcome code carried by auth and
// registration responses. Values are part of the public API contract.
type responseCode string

const (
	codeSuccess            responseCode = "SUCCESS"
	codeAlreadyRegistered  responseCode = "ALREADY_REGISTERED"
	codeEmailError         responseCode = "EMAIL_ERROR"
	codeTokenNotFound      responseCode = "TOKEN_NOT_FOUND"
	codeTokenExpired       responseCode = "TOKEN_EXPIRED"
	codeWrongLoginPassword responseCode = "WRONG_LOGIN_OR_PASSWORD"
	codeConfirmYourAccount responseCode = "CONFIRM_YOUR_ACCOUNT"
)

type codeResponse struct {
	Code responseCode `json:"code"`
}
