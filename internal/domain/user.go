package domain

import "strconv"

type UserIdentifier uint

func (i UserIdentifier) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleAuditor UserRole = "auditor"
	UserRoleViewer  UserRole = "viewer"
)

// User is a dashboard account record. Account management and authentication
// live outside of this service; the portal reads users to resolve display
// names and notification recipients.
type User struct {
	BaseModel

	Id        UserIdentifier `gorm:"primaryKey;autoIncrement:true;column:id"`
	Username  string         `gorm:"column:username;uniqueIndex:idx_user_username"`
	Firstname string         `gorm:"column:firstname"`
	Lastname  string         `gorm:"column:lastname"`
	Email     string         `gorm:"column:email"`
	Role      UserRole       `gorm:"column:role"`
}

// DisplayName returns the full name of the user, falling back to the
// username if no name parts are set.
func (u *User) DisplayName() string {
	switch {
	case u.Firstname != "" && u.Lastname != "":
		return u.Firstname + " " + u.Lastname
	case u.Firstname != "":
		return u.Firstname
	case u.Lastname != "":
		return u.Lastname
	default:
		return u.Username
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
