package model

// User is a row of the users table.
//
// Password holds whatever the caller stored; the repository never hashes
// or compares it.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}

// NewUser is the input of AddUser.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Validate checks the struct tags.
func (u *NewUser) Validate() error {
	return validate.Struct(u)
}
