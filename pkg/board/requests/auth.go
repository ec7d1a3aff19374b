package requests

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Signup struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Gmail    string `json:"gmail"`
}

type SelfRegister struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode"`
}

type ForgotPassword struct {
	Gmail string `json:"gmail"`
}

type ResetPassword struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
