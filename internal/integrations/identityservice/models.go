package identityservice

// verifyCredentialRequest тело запроса подтверждения пароля
type verifyCredentialRequest struct {
	Password string `json:"password"`
}

// User данные пользователя из IdentityService
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	IsStaff     bool   `json:"isStaff"`
}
