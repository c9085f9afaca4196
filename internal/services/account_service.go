package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/repo"
	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/utils"
)

// AccountService covers the admin-side account lifecycle: provisioning
// accounts for employees, listing them, toggling status and resetting
// passwords on behalf of users.
type AccountService struct {
	users     UserStore
	directory DirectoryStore
	sessions  SessionStore
	mailer    Mailer
	logger    *slog.Logger
}

type CreatedAccount struct {
	Message string `json:"message"`
	User    struct {
		UserID   int64  `json:"userid"`
		Usercode string `json:"usercode"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	} `json:"user"`
	// ManualPassword is only populated when the notification mail could
	// not be delivered, so the admin can hand the password over directly.
	ManualPassword *string `json:"manual_password,omitempty"`
}

type AccountListResult struct {
	Data       []repo.AccountRow `json:"data"`
	Pagination utils.Pagination  `json:"pagination"`
}

type AccountFormData struct {
	Employees []models.Employee `json:"employees"`
	Jobtitles []models.Jobtitle `json:"jobtitles"`
	Roles     []models.Role     `json:"roles"`
}

type AdminResetResult struct {
	Message        string  `json:"message"`
	ManualPassword *string `json:"manual_password,omitempty"`
}

func NewAccountService(users UserStore, directory DirectoryStore, sessions SessionStore, mailer Mailer, logger *slog.Logger) *AccountService {
	return &AccountService{users: users, directory: directory, sessions: sessions, mailer: mailer, logger: logger}
}

func (s *AccountService) Create(ctx context.Context, employeeID, jobtitleID, roleID int64) (*CreatedAccount, error) {
	employee, err := s.directory.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, utils.NewAppError(404, "NOT_FOUND", "employee does not exist", nil)
	}
	jobtitle, err := s.directory.GetJobtitle(ctx, jobtitleID)
	if err != nil {
		return nil, utils.NewAppError(404, "NOT_FOUND", "job title does not exist", nil)
	}
	role, err := s.directory.GetRole(ctx, roleID)
	if err != nil {
		return nil, utils.NewAppError(404, "NOT_FOUND", "role does not exist", nil)
	}

	exists, err := s.users.ExistsByEmployeeAndRole(ctx, employeeID, roleID)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not check existing accounts", nil)
	}
	if exists {
		return nil, utils.NewAppError(409, "CONFLICT", fmt.Sprintf("employee already has an account with role %q", role.Name), nil)
	}

	seq, err := s.users.NextUsercodeSeq(ctx)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate usercode", nil)
	}
	// Usercode format: <sequence><employee code><jobtitle code>.
	usercode := fmt.Sprintf("%d%s%s", seq, employee.EmployeeCode, jobtitle.JobtitleCode)

	plainPass, err := randomPassword()
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate password", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not secure password", nil)
	}

	created, err := s.users.Create(ctx, &models.User{
		Usercode:   usercode,
		Name:       usercode,
		EmployeeID: &employee.EmployeeID,
		Role:       role.RoleID,
		Pass:       string(hash),
		Status:     true,
	})
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not create account", nil)
	}

	s.logger.Info("account created", "usercode", created.Usercode, "role", role.Name)

	sent := s.notify(ctx, employee.Email,
		"Your HRM account has been created",
		fmt.Sprintf("Hello %s,\n\nYour HRM account is ready:\n- Usercode: %s\n- Password: %s\n- Role: %s\n\nPlease change the password after your first login.",
			employee.Name, created.Usercode, plainPass, role.Name))

	result := &CreatedAccount{Message: "account created"}
	result.User.UserID = created.UserID
	result.User.Usercode = created.Usercode
	result.User.Name = created.Name
	result.User.Role = role.Name
	if !sent {
		result.ManualPassword = &plainPass
	}
	return result, nil
}

func (s *AccountService) List(ctx context.Context, page, perPage int) (*AccountListResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	items, total, err := s.users.ListAccounts(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not list accounts", nil)
	}
	if items == nil {
		items = []repo.AccountRow{}
	}

	return &AccountListResult{
		Data:       items,
		Pagination: utils.NewPagination(page, perPage, total),
	}, nil
}

func (s *AccountService) FormData(ctx context.Context) (*AccountFormData, error) {
	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not load form data", nil)
	}
	jobtitles, err := s.directory.ListJobtitles(ctx)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not load form data", nil)
	}
	roles, err := s.directory.ListRoles(ctx)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not load form data", nil)
	}
	return &AccountFormData{Employees: employees, Jobtitles: jobtitles, Roles: roles}, nil
}

func (s *AccountService) Update(ctx context.Context, userID int64, status bool, roleID int64) error {
	if _, err := s.directory.GetRole(ctx, roleID); err != nil {
		return utils.NewAppError(404, "NOT_FOUND", "role does not exist", nil)
	}

	if err := s.users.UpdateAccount(ctx, userID, status, roleID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewAppError(404, "NOT_FOUND", "account does not exist", nil)
		}
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not update account", nil)
	}

	// Disabling an account logs the user out everywhere immediately.
	if !status {
		if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
			return utils.NewAppError(500, "INTERNAL_ERROR", "could not clear sessions", nil)
		}
	}
	return nil
}

func (s *AccountService) Delete(ctx context.Context, userID int64) error {
	// Sessions reference the user row, so they go first.
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not clear sessions", nil)
	}

	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return utils.NewAppError(500, "INTERNAL_ERROR", "could not delete account", nil)
	}
	if !deleted {
		return utils.NewAppError(404, "NOT_FOUND", "account does not exist", nil)
	}
	return nil
}

func (s *AccountService) AdminResetPassword(ctx context.Context, userID int64) (*AdminResetResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.NewAppError(404, "NOT_FOUND", "account does not exist", nil)
	}

	plainPass, err := randomPassword()
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not generate password", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not secure password", nil)
	}

	if err := s.users.UpdatePassword(ctx, user.UserID, string(hash)); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not update password", nil)
	}
	if err := s.sessions.DeleteByUser(ctx, user.UserID); err != nil {
		return nil, utils.NewAppError(500, "INTERNAL_ERROR", "could not clear sessions", nil)
	}

	sent := false
	if user.EmployeeID != nil {
		if employee, err := s.directory.GetEmployee(ctx, *user.EmployeeID); err == nil {
			sent = s.notify(ctx, employee.Email,
				"Your HRM password has been reset",
				fmt.Sprintf("Hello %s,\n\nAn administrator reset your password:\n- Usercode: %s\n- New password: %s\n\nPlease change it right after logging in.",
					employee.Name, user.Usercode, plainPass))
		}
	}

	result := &AdminResetResult{Message: "password reset"}
	if !sent {
		result.ManualPassword = &plainPass
	}
	return result, nil
}

func (s *AccountService) notify(ctx context.Context, to, subject, body string) bool {
	if to == "" {
		return false
	}
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("account mail not sent", "to", to, "error", err)
		return false
	}
	return true
}

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"

// randomPassword generates a 6-12 character initial password, matching
// what employees receive by mail on account creation.
func randomPassword() (string, error) {
	span, err := rand.Int(rand.Reader, big.NewInt(7))
	if err != nil {
		return "", err
	}
	length := 6 + int(span.Int64())

	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}
