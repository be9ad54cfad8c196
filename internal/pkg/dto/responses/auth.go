package responses

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

type SignIn struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	User      User   `json:"user"`
}

type CurrentUser struct {
	User         User   `json:"user"`
	SelectedDate string `json:"selected_date"`
}
