package models

// Employee is the slice of the HR employee record the auth service needs:
// the registered email for identity recovery and the employee code for
// usercode generation. The full HR schema is owned elsewhere.
type Employee struct {
	EmployeeID   int64  `json:"employeeid" gorm:"column:employeeid;primaryKey;autoIncrement"`
	EmployeeCode string `json:"employeecode" gorm:"column:employeecode"`
	Name         string `json:"name" gorm:"column:name"`
	Email        string `json:"email" gorm:"column:email"`
	JobtitleID   int64  `json:"jobtitleid" gorm:"column:jobtitleid"`
}

func (Employee) TableName() string { return "employee" }

type Jobtitle struct {
	JobtitleID   int64  `json:"jobtitleid" gorm:"column:jobtitleid;primaryKey;autoIncrement"`
	JobtitleCode string `json:"jobtitlecode" gorm:"column:jobtitlecode"`
	Name         string `json:"name" gorm:"column:name"`
}

func (Jobtitle) TableName() string { return "jobtitle" }

type Role struct {
	RoleID   int64  `json:"roleid" gorm:"column:roleid;primaryKey;autoIncrement"`
	RoleCode string `json:"rolecode" gorm:"column:rolecode"`
	Name     string `json:"name" gorm:"column:name"`
	Status   bool   `json:"status" gorm:"column:status;default:true"`
}

func (Role) TableName() string { return "role" }
