package entity

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleCritic UserRole = "critic"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	Base
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
}
