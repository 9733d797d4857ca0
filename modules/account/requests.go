package account

// Presence checks live in auth.Service so that clients get its messages;
// the tags below only constrain values that were actually sent.

type signupRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"omitempty,password"`
	Name     string `json:"name" validate:"max=200"`
	Address  string `json:"address" validate:"max=500"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,max=254"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name    string `json:"name" validate:"max=200"`
	Address string `json:"address" validate:"max=500"`
}

// forgotPasswordRequest accepts the email from the query string or the JSON
// body; the body wins when both are present.
type forgotPasswordRequest struct {
	Email string `json:"email" query:"email" validate:"omitempty,email,max=254"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

type changePasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password" validate:"omitempty,password"`
}
