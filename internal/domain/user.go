package domain

import "time"

type User struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	ExperienceLevel string    `json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
}

type UserRepository interface {
	Create(user *User) (int64, error)
	FindByEmail(email string) (*User, error)
	FindByID(id int64) (*User, error)
	FindByIDWithPassword(id int64) (*User, error)
	UpdateProfile(id int64, name string, age int, gender, experienceLevel string) error
	UpdatePassword(id int64, passwordHash string) error
	Delete(id int64) error
	FindAll() ([]*User, error)
}

type UserService interface {
	Register(name, email, password string, age int, gender, experienceLevel string) (*User, error)
	Login(email, password string) (*User, error)
	GetUserByID(id int64) (*User, error)
	UpdateProfile(id int64, name string, age int, gender, experienceLevel string) (*User, error)
	ChangePassword(id int64, oldPassword, newPassword string) error
	DeleteUser(id int64) error
	ListUsers() ([]*User, error)
}

// PasswordHasher, servis katmanını kullanılan hash algoritmasından
// (bcrypt) bağımsız tutar.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
