package request

// RegisterUserRequest is the request body for registering a user
type RegisterUserRequest struct {
	Nickname string `json:"nickname"`
}

// JoinGameRequest is the request body for joining the pending game
type JoinGameRequest struct {
	UserToken string `json:"user_token"`
	TimeLimit int    `json:"time_limit"`
}

// CancelJoinRequest is the request body for leaving the pending game
type CancelJoinRequest struct {
	UserToken string `json:"user_token"`
}

// PlayWordRequest is the request body for playing a word
type PlayWordRequest struct {
	UserToken string `json:"user_token"`
	Word      string `json:"word"`
}
