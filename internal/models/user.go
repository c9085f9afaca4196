package models

import "time"

// User is an account record in the "user" table. Accounts are provisioned
// by an admin for an existing employee; Pass holds a bcrypt hash.
type User struct {
	UserID     int64  `json:"userid" gorm:"column:userid;primaryKey;autoIncrement"`
	Usercode   string `json:"usercode" gorm:"column:usercode;uniqueIndex"`
	Name       string `json:"name" gorm:"column:name"`
	EmployeeID *int64 `json:"employeeid" gorm:"column:employeeid;index"`
	Role       int64  `json:"role" gorm:"column:role;not null"`
	Pass       string `json:"-" gorm:"column:pass"`
	Status     bool   `json:"status" gorm:"column:status;default:true"`

	// RecoveryExpiresAt is the pending password-recovery window opened by
	// verify-identity. NULL means no recovery is pending; reset-password
	// consumes it.
	RecoveryExpiresAt *time.Time `json:"-" gorm:"column:recoveryexpiresat"`
}

func (User) TableName() string { return "user" }
