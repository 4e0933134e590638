package request

type UserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=user critic admin"`
}

// UserUpdateRequest replaces the full record; a blank password keeps
// the stored hash.
type UserUpdateRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Role     string `json:"role" validate:"required,oneof=user critic admin"`
}

// LoginRequest fields are checked by hand in the handler so that a
// missing field yields the contract's 400 instead of a validation map.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
