package requests

type RegisterUser struct {
	Email          string `json:"email" validate:"required,email"`
	DisplayName    string `json:"display_name" validate:"max=64"`
	Password       string `json:"password" validate:"password"`
	RetypePassword string `json:"retype_password" validate:"required,eqfield=Password"`
}

type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
