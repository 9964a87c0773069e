package apisdk

// TokenResponse is returned by register, login and refresh. Refresh only
// mints a new access token, so RefreshToken is empty there.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// MessageResponse is the generic success envelope for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body for POST /api/register.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	Password    string `json:"password"`
}

// LoginRequest is the body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest is the body for POST /api/refresh and POST /api/logout.
type TokenRequest struct {
	Token string `json:"token"`
}

// User is the public view of a user record. The password hash never
// appears here.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
}

// UserRequest is the body for creating or updating a user.
type UserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phonenumber"`
}

// UserCreatedResponse is returned by POST /api/users.
type UserCreatedResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// SetPasswordRequest is the body for POST /api/users/password.
type SetPasswordRequest struct {
	ID              int64  `json:"id"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePasswordRequest is the body for PUT /api/users/password/{id}.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Todo is a single todo item.
type Todo struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Complete bool   `json:"complete"`
}

// TodoRequest is the body for creating or updating a todo.
type TodoRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Complete bool   `json:"complete"`
}

// TodoCreatedResponse is returned by POST /api/todos.
type TodoCreatedResponse struct {
	Message string `json:"message"`
	Todo    Todo   `json:"todo"`
}

// HealthChecks reports dependency status for the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
