package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. Password always holds the bcrypt hash,
// never the raw value.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Phone     string             `json:"phone" bson:"phone"`
	Password  string             `json:"-" bson:"password"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// RegisterInput is the JSON body of a registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,inphone"`
	Password string `json:"password" validate:"required,password"`
	Address  string `json:"address"`
}

// LoginInput is the JSON body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch is the JSON body of a profile update. A nil field is
// absent from the request and leaves the stored value untouched.
type ProfilePatch struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,inphone"`
	Password *string `json:"password" validate:"omitempty,password"`
	Address  *string `json:"address"`
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Password == nil && p.Address == nil
}

// UserUpdate is the staged field set a profile update applies to the
// stored user. Password holds the bcrypt hash of the new value.
type UserUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Address  *string
}

func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Password == nil && u.Address == nil
}
