package membership

import "time"

type Member struct {
	Email        string    `db:"email" json:"email"`
	Password     string    `db:"password" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	ProfileImage *string   `db:"profile_image" json:"profile_image"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=50"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=50"`
	Password string `json:"password" binding:"required,min=8,max=100"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

type TokenData struct {
	Token string `json:"token"`
}

type Profile struct {
	Email        string  `db:"email" json:"email"`
	FirstName    string  `db:"first_name" json:"first_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	ProfileImage *string `db:"profile_image" json:"profile_image"`
}

// ProfileWithImageURL is the upload response: the stored profile plus the
// absolute URL the image is served from.
type ProfileWithImageURL struct {
	Profile
	ProfileImageURL string `json:"profile_image_url"`
}

type MemberSummary struct {
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}
