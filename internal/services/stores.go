package services

import (
	"context"
	"time"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/repo"
)

// UserStore is the credential-store surface the auth flows depend on.
// *repo.UserRepo is the production implementation.
type UserStore interface {
	GetByUsercode(ctx context.Context, usercode string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	NextUsercodeSeq(ctx context.Context) (int64, error)
	ExistsByEmployeeAndRole(ctx context.Context, employeeID, roleID int64) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	BeginRecovery(ctx context.Context, userID int64, expiresAt time.Time) error
	ConsumeRecovery(ctx context.Context, userID int64, passHash string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passHash string) error
	UpdateAccount(ctx context.Context, userID int64, status bool, roleID int64) error
	Delete(ctx context.Context, userID int64) (bool, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]repo.AccountRow, int64, error)
}

// DirectoryStore reads the HR reference tables.
type DirectoryStore interface {
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	GetJobtitle(ctx context.Context, id int64) (*models.Jobtitle, error)
	GetRole(ctx context.Context, id int64) (*models.Role, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListJobtitles(ctx context.Context) ([]models.Jobtitle, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	Upsert(ctx context.Context, userID int64, refreshToken string, expiresAt time.Time) error
	DeleteByToken(ctx context.Context, refreshToken string) (bool, error)
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Mailer delivers account notifications. The SMTP implementation lives in
// internal/mailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
