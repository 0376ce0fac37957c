// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const userColumns = `user_id, email, given_name, surname, city, phone_number, profile_description, password`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Email, &u.GivenName, &u.Surname,
		&u.City, &u.PhoneNumber, &u.ProfileDescription, &u.Password,
	)
	return u, err
}

// CreateUser inserts u and returns it with its assigned user_id.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if err := validateUser(u); err != nil {
		return models.User{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.queryRow(ctx, []any{&u.UserID}, `
			INSERT INTO users (email, given_name, surname, city, phone_number, profile_description, password)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING user_id
		`, u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUser returns one user by user_id.
func (s *Store) GetUser(ctx context.Context, userID int64) (models.User, error) {
	u, err := withTx(ctx, s, func(sc *scope) (models.User, error) {
		u, err := scanUser(sc.row(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID))
		return u, classify(err)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("get user %d: %w", userID, err)
	}
	return u, nil
}

func (sc *scope) listUsers(ctx context.Context) ([]models.User, error) {
	rows, err := sc.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

// ListUsers returns every user ordered by user_id.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := withTx(ctx, s, func(sc *scope) ([]models.User, error) {
		return sc.listUsers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces every mutable column of the user with u's values.
func (s *Store) UpdateUser(ctx context.Context, userID int64, u models.User) (models.User, error) {
	if err := validateUser(u); err != nil {
		return models.User{}, err
	}
	u.UserID = userID

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx, `
			UPDATE users
			SET email = ?, given_name = ?, surname = ?, city = ?,
			    phone_number = ?, profile_description = ?, password = ?
			WHERE user_id = ?
		`, u.Email, u.GivenName, u.Surname, u.City, u.PhoneNumber, u.ProfileDescription, u.Password, userID)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("update user %d: %w", userID, err)
	}
	return u, nil
}

// DeleteUser removes a user that has no caregiver or member row.
// A user still specialized fails with ErrReferentialIntegrity.
func (s *Store) DeleteUser(ctx context.Context, userID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteUserPlan, userID)
}

// PurgeUser removes a user together with everything that depends on it:
// job applications, jobs, appointments, address, caregiver and member rows.
func (s *Store) PurgeUser(ctx context.Context, userID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, purgeUserPlan, userID)
}
