package domain

import "time"

// UserRole separates submitting doctors from the marketing team.
type UserRole string

const (
	RoleDoctor    UserRole = "DOCTOR"
	RoleMarketing UserRole = "MARKETING"
)

// User is the profile record for doctors and marketing members. Credentials
// live on Account; the profile is what the case store and the API work with.
type User struct {
	ID         string
	Name       string
	Role       UserRole
	Degree     string
	Specialty  string
	Whatsapp   string
	Email      string
	Instagram  string
	Website    string
	CasesCount int
}

// Account carries the Postgres-backed identity for a user.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Degree       string
	Specialty    string
	Whatsapp     string
	Instagram    string
	Website      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile derives the store-facing user record from an account.
func (a *Account) Profile() User {
	return User{
		ID:        a.ID,
		Name:      a.Name,
		Role:      a.Role,
		Degree:    a.Degree,
		Specialty: a.Specialty,
		Whatsapp:  a.Whatsapp,
		Email:     a.Email,
		Instagram: a.Instagram,
		Website:   a.Website,
	}
}
