package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type UserCredential struct {
	ID           string `json:"id" gorm:"primaryKey;type:char(36)"`
	Email        string `json:"email" gorm:"size:150;uniqueIndex;not null"`
	PasswordHash []byte `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"type:enum('CUSTOMER','ADMIN');not null"`
	IsActive     bool   `json:"isActive" gorm:"not null;default:true"`
}

type Customer struct {
	ID             string         `json:"id" gorm:"primaryKey;type:char(36)"`
	FirstName      string         `json:"firstName" gorm:"size:100;not null"`
	LastName       string         `json:"lastName" gorm:"size:100"`
	Email          string         `json:"email" gorm:"size:150;uniqueIndex;not null"`
	PhoneNumber    string         `json:"phoneNumber" gorm:"size:30"`
	IsMember       bool           `json:"isMember"`
	CredentialID   string         `json:"-" gorm:"type:char(36);not null"`
	UserCredential UserCredential `json:"-" gorm:"foreignKey:CredentialID"`
}

type Admin struct {
	ID             string         `json:"id" gorm:"primaryKey;type:char(36)"`
	FullName       string         `json:"fullName" gorm:"size:150;not null"`
	Email          string         `json:"email" gorm:"size:150;uniqueIndex;not null"`
	PhoneNumber    string         `json:"phoneNumber" gorm:"size:30;index"`
	CredentialID   string         `json:"-" gorm:"type:char(36);not null"`
	UserCredential UserCredential `json:"-" gorm:"foreignKey:CredentialID"`
}

// Identity is the verified caller of an operation.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
