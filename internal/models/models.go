package models

import (
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName     string    `gorm:"size:250;not null"        json:"role_name"`
	Description  string    `                                json:"description"`
	Active       bool      `gorm:"not null"                 json:"active"`
	IsDeleted    bool      `gorm:"not null;default:false"   json:"is_deleted"`
	CreatedDate  time.Time `gorm:"not null"                 json:"created_date"`
	ModifiedDate time.Time `                                json:"modified_date"`
}

// RolePrivilege rows are removed by the store when their role is deleted.
type RolePrivilege struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID            uint      `gorm:"index;not null"           json:"role_id"`
	Role              *Role     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RolePrivilegeName string    `gorm:"size:250;not null"        json:"role_privilege_name"`
	Description       string    `                                json:"description"`
	IsActive          bool      `gorm:"not null"                 json:"is_active"`
	IsDeleted         bool      `gorm:"not null;default:false"   json:"is_deleted"`
	CreatedDate       time.Time `gorm:"not null"                 json:"created_date"`
	ModifiedDate      time.Time `                                json:"modified_date"`
}

type UserType struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:255;not null"        json:"name"`
	Description string `gorm:"size:1500"                json:"description"`
}

// User is unique by username among rows that are not soft-deleted; the partial
// index lets a deleted user's name be registered again.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"                                               json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:idx_users_username_active,where:is_deleted = false" json:"username"`
	PasswordHash []byte    `gorm:"not null"                                                               json:"-"`
	PasswordSalt []byte    `gorm:"not null"                                                               json:"-"`
	UserTypeID   *uint     `gorm:"index"                                                                  json:"user_type_id"`
	UserType     *UserType `gorm:"constraint:OnDelete:SET NULL"                                           json:"-"`
	RoleID       *uint     `gorm:"index"                                                                  json:"role_id"`
	Role         *Role     `gorm:"constraint:OnDelete:SET NULL"                                           json:"-"`
	IsActive     bool      `gorm:"not null"                                                               json:"is_active"`
	IsDeleted    bool      `gorm:"not null;default:false"                                                 json:"is_deleted"`
	CreatedDate  time.Time `gorm:"not null"                                                               json:"created_date"`
	ModifiedDate time.Time `                                                                              json:"modified_date"`
}

type Student struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentName  string    `gorm:"size:255;not null"        json:"student_name"`
	Email        string    `gorm:"size:255;not null"        json:"email"`
	Address      string    `gorm:"size:500"                 json:"address"`
	DateOfBirth  time.Time `                                json:"date_of_birth"`
	IsDeleted    bool      `gorm:"not null;default:false"   json:"is_deleted"`
	CreatedDate  time.Time `gorm:"not null"                 json:"created_date"`
	ModifiedDate time.Time `                                json:"modified_date"`
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{&UserType{}, &Role{}, &RolePrivilege{}, &User{}, &Student{}}
}
