package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role separates farmers from the administrator.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleAdmin  Role = "admin"
)

// Account is a registered farmer or the administrator.
type Account struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	FarmName     string             `bson:"farmName" json:"farmName"`
	Location     string             `bson:"location" json:"location"`
	Role         Role               `bson:"role" json:"role"`
	Blocked      bool               `bson:"isBlocked" json:"isBlocked"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Identity is the caller resolved from a session token.
type Identity struct {
	ID      primitive.ObjectID
	Role    Role
	Blocked bool
}

// IsAdmin reports whether the caller bypasses ownership scoping.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FarmName string `json:"farmName" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is returned by register and login.
type Session struct {
	Token string  `json:"token"`
	User  Account `json:"user"`
}
