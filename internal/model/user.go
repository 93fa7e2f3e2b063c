// Package model defines the database entities. Relationships are plain id
// references resolved by explicit repository queries, never ORM navigation.
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User account statuses.
const (
	UserStatusActive   int8 = 0
	UserStatusDisabled int8 = 1
)

// User is an identity record. Users are never hard-deleted; deactivation
// flips Status to disabled.
type User struct {
	gorm.Model

	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(36);not null;comment:user id"`
	Username    string `gorm:"column:username;uniqueIndex;type:varchar(50);not null;comment:unique login name"`
	Email       string `gorm:"column:email;uniqueIndex;type:varchar(100);not null;comment:unique email"`
	DisplayName string `gorm:"column:display_name;type:varchar(100);comment:display name"`
	Avatar      string `gorm:"column:avatar;type:varchar(255);comment:avatar url"`
	Password    string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt hash"`
	Status      int8   `gorm:"column:status;index;not null;comment:0 active 1 disabled"`

	// RawPassword receives the plaintext from the transport layer and is
	// hashed into Password by BeforeSave. Never persisted.
	RawPassword string `gorm:"-" json:"-"`
}

func (User) TableName() string {
	return "user"
}

// BeforeSave hashes RawPassword into Password when one is set.
func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword compares a plaintext candidate against the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// IsActive reports whether the account may act or be targeted by actions.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
