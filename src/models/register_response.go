package models

// UserResponse is the public view of a User. Token is only set on register
// and login.
type UserResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Profession string `json:"profession"`
	Gender     Gender `json:"gender"`
	Token      string `json:"token,omitempty"`
}

func NewUserResponse(u *User, token string) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Profession: u.Profession,
		Gender:     u.Gender,
		Token:      token,
	}
}
