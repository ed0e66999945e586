package dto

type LoginInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  UserOutput `json:"user"`
}
