package handler

// statusResponse is the envelope for responses carrying no data.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// dataResponse is the envelope for responses carrying a payload. Count
// is populated only on list responses.
type dataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// blogRequest is shared by create and update. The author is never part
// of the payload; it comes from the request principal.
type blogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
