package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type UserRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewUserRepo(pool *pgxpool.Pool, timeout time.Duration) *UserRepo {
	return &UserRepo{pool: pool, timeout: timeout}
}

const userColumns = `userid, usercode, name, employeeid, role, pass, status, recoveryexpiresat`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.UserID,
		&user.Usercode,
		&user.Name,
		&user.EmployeeID,
		&user.Role,
		&user.Pass,
		&user.Status,
		&user.RecoveryExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) GetByUsercode(ctx context.Context, usercode string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "user"
		WHERE usercode = $1
	`, usercode)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM "user"
		WHERE userid = $1
	`, id)
	return scanUser(row)
}

// NextUsercodeSeq returns the sequence number for the next generated
// usercode. Derived from MAX(userid) rather than a row count: userid only
// grows, so the value never repeats a sequence already embedded in a live
// usercode even after deletions shrink the table.
func (r *UserRepo) NextUsercodeSeq(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(userid), 0) + 1 FROM "user"`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next usercode sequence: %w", err)
	}
	return seq, nil
}

func (r *UserRepo) ExistsByEmployeeAndRole(ctx context.Context, employeeID, roleID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM "user" WHERE employeeid = $1 AND role = $2)
	`, employeeID, roleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO "user" (usercode, name, employeeid, role, pass, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, user.Usercode, user.Name, user.EmployeeID, user.Role, user.Pass, user.Status)
	return scanUser(row)
}

// BeginRecovery opens the password-recovery window for a user. A second
// verify-identity call simply moves the window forward.
func (r *UserRepo) BeginRecovery(ctx context.Context, userID int64, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		UPDATE "user"
		SET recoveryexpiresat = $1
		WHERE userid = $2
	`, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("begin recovery: %w", err)
	}
	return nil
}

// ConsumeRecovery atomically sets the new password hash if and only if a
// recovery window is still open. Exactly one of several concurrent calls
// for the same user observes consumed == true; the rest see the window
// already cleared.
func (r *UserRepo) ConsumeRecovery(ctx context.Context, userID int64, passHash string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE "user"
		SET pass = $1, recoveryexpiresat = NULL
		WHERE userid = $2
		  AND recoveryexpiresat IS NOT NULL
		  AND recoveryexpiresat > NOW()
	`, passHash, userID)
	if err != nil {
		return false, fmt.Errorf("consume recovery: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID int64, passHash string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		UPDATE "user"
		SET pass = $1, recoveryexpiresat = NULL
		WHERE userid = $2
	`, passHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdateAccount(ctx context.Context, userID int64, status bool, roleID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE "user"
		SET status = $1, role = $2
		WHERE userid = $3
	`, status, roleID, userID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM "user" WHERE userid = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AccountRow is the joined shape of the admin account listing.
type AccountRow struct {
	UserID       int64  `json:"userid"`
	Usercode     string `json:"usercode"`
	Name         string `json:"name"`
	Status       bool   `json:"status"`
	EmployeeID   *int64 `json:"employeeid"`
	EmployeeName string `json:"employeename"`
	EmployeeCode string `json:"employeecode"`
	JobtitleName string `json:"jobtitlename"`
	Role         string `json:"role"`
	RoleID       int64  `json:"roleid"`
}

func (r *UserRepo) ListAccounts(ctx context.Context, limit, offset int) ([]AccountRow, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM "user"`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT u.userid, u.usercode, u.name, u.status, u.employeeid,
		       COALESCE(e.name, '---'), COALESCE(e.employeecode, ''),
		       COALESCE(j.name, '---'), COALESCE(ro.name, '---'), u.role
		FROM "user" u
		LEFT JOIN employee e ON e.employeeid = u.employeeid
		LEFT JOIN jobtitle j ON j.jobtitleid = e.jobtitleid
		LEFT JOIN role ro ON ro.roleid = u.role
		ORDER BY u.userid DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var items []AccountRow
	for rows.Next() {
		var item AccountRow
		if err := rows.Scan(
			&item.UserID,
			&item.Usercode,
			&item.Name,
			&item.Status,
			&item.EmployeeID,
			&item.EmployeeName,
			&item.EmployeeCode,
			&item.JobtitleName,
			&item.Role,
			&item.RoleID,
		); err != nil {
			return nil, 0, fmt.Errorf("scan account row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate accounts: %w", err)
	}
	return items, total, nil
}
