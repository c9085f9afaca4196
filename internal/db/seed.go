package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedRole struct {
	Code string
	Name string
}

// EnsureSeedData creates the base roles and, when the user table is
// empty, a bootstrap admin account so the system is reachable after a
// fresh install.
func EnsureSeedData(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	roles := []seedRole{
		{Code: "ADMIN", Name: "admin"},
		{Code: "STAFF", Name: "staff"},
	}

	for _, role := range roles {
		exists, err := roleExists(ctx, pool, timeout, role.Code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		ctxInsert, cancel := context.WithTimeout(ctx, timeout)
		_, err = pool.Exec(ctxInsert, `
			INSERT INTO role (rolecode, name, status)
			VALUES ($1, $2, TRUE)
		`, role.Code, role.Name)
		cancel()
		if err != nil {
			return fmt.Errorf("insert seed role %s: %w", role.Code, err)
		}
	}

	return ensureBootstrapAdmin(ctx, pool, timeout)
}

func ensureBootstrapAdmin(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var count int
	if err := pool.QueryRow(ctxCheck, `SELECT COUNT(*) FROM "user"`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	ctxInsert, cancelInsert := context.WithTimeout(ctx, timeout)
	defer cancelInsert()
	_, err = pool.Exec(ctxInsert, `
		INSERT INTO "user" (usercode, name, role, pass, status)
		SELECT 'admin', 'admin', roleid, $1, TRUE FROM role WHERE rolecode = 'ADMIN'
	`, string(hash))
	if err != nil {
		return fmt.Errorf("insert bootstrap admin: %w", err)
	}

	return nil
}

func roleExists(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, code string) (bool, error) {
	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row := pool.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM role WHERE rolecode = $1)", code)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("check role exists: %w", err)
	}
	return exists, nil
}
