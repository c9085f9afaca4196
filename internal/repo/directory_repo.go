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

// DirectoryRepo reads the HR reference tables the account surface needs:
// employees, job titles and roles. Writes to those tables happen in the
// HR modules, not here.
type DirectoryRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewDirectoryRepo(pool *pgxpool.Pool, timeout time.Duration) *DirectoryRepo {
	return &DirectoryRepo{pool: pool, timeout: timeout}
}

func (r *DirectoryRepo) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT employeeid, COALESCE(employeecode, ''), COALESCE(name, ''), COALESCE(email, ''), COALESCE(jobtitleid, 0)
		FROM employee
		WHERE employeeid = $1
	`, id)

	var emp models.Employee
	if err := row.Scan(&emp.EmployeeID, &emp.EmployeeCode, &emp.Name, &emp.Email, &emp.JobtitleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &emp, nil
}

func (r *DirectoryRepo) GetJobtitle(ctx context.Context, id int64) (*models.Jobtitle, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT jobtitleid, COALESCE(jobtitlecode, ''), COALESCE(name, '')
		FROM jobtitle
		WHERE jobtitleid = $1
	`, id)

	var jt models.Jobtitle
	if err := row.Scan(&jt.JobtitleID, &jt.JobtitleCode, &jt.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get jobtitle: %w", err)
	}
	return &jt, nil
}

func (r *DirectoryRepo) GetRole(ctx context.Context, id int64) (*models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT roleid, COALESCE(rolecode, ''), COALESCE(name, ''), COALESCE(status, TRUE)
		FROM role
		WHERE roleid = $1
	`, id)

	var role models.Role
	if err := row.Scan(&role.RoleID, &role.RoleCode, &role.Name, &role.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

func (r *DirectoryRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT employeeid, COALESCE(employeecode, ''), COALESCE(name, ''), COALESCE(email, ''), COALESCE(jobtitleid, 0)
		FROM employee
		ORDER BY employeeid
	`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var items []models.Employee
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.EmployeeID, &emp.EmployeeCode, &emp.Name, &emp.Email, &emp.JobtitleID); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return items, nil
}

func (r *DirectoryRepo) ListJobtitles(ctx context.Context) ([]models.Jobtitle, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT jobtitleid, COALESCE(jobtitlecode, ''), COALESCE(name, '')
		FROM jobtitle
		ORDER BY jobtitleid
	`)
	if err != nil {
		return nil, fmt.Errorf("list jobtitles: %w", err)
	}
	defer rows.Close()

	var items []models.Jobtitle
	for rows.Next() {
		var jt models.Jobtitle
		if err := rows.Scan(&jt.JobtitleID, &jt.JobtitleCode, &jt.Name); err != nil {
			return nil, fmt.Errorf("scan jobtitle: %w", err)
		}
		items = append(items, jt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobtitles: %w", err)
	}
	return items, nil
}

func (r *DirectoryRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT roleid, COALESCE(rolecode, ''), COALESCE(name, ''), COALESCE(status, TRUE)
		FROM role
		ORDER BY roleid
	`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var items []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.RoleID, &role.RoleCode, &role.Name, &role.Status); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		items = append(items, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return items, nil
}
