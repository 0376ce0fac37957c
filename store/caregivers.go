// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const caregiverColumns = `caregiver_user_id, photo, gender, caregiving_type, hourly_rate`

func scanCaregiver(row rowScanner) (models.Caregiver, error) {
	var c models.Caregiver
	err := row.Scan(&c.CaregiverUserID, &c.Photo, &c.Gender, &c.CaregivingType, &c.HourlyRate)
	return c, err
}

// CreateCaregiver registers an existing user as a caregiver.
func (s *Store) CreateCaregiver(ctx context.Context, c models.Caregiver) (models.Caregiver, error) {
	if err := validateCaregiver(c); err != nil {
		return models.Caregiver{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		_, err := sc.exec(ctx, `
			INSERT INTO caregiver (caregiver_user_id, photo, gender, caregiving_type, hourly_rate)
			VALUES (?, ?, ?, ?, ?)
		`, c.CaregiverUserID, c.Photo, c.Gender, c.CaregivingType, c.HourlyRate)
		return err
	})
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("create caregiver %d: %w", c.CaregiverUserID, err)
	}
	return c, nil
}

// GetCaregiver returns one caregiver by caregiver_user_id.
func (s *Store) GetCaregiver(ctx context.Context, caregiverID int64) (models.Caregiver, error) {
	c, err := withTx(ctx, s, func(sc *scope) (models.Caregiver, error) {
		c, err := scanCaregiver(sc.row(ctx, `SELECT `+caregiverColumns+` FROM caregiver WHERE caregiver_user_id = ?`, caregiverID))
		return c, classify(err)
	})
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("get caregiver %d: %w", caregiverID, err)
	}
	return c, nil
}

func (sc *scope) listCaregivers(ctx context.Context) ([]models.Caregiver, error) {
	rows, err := sc.query(ctx, `SELECT `+caregiverColumns+` FROM caregiver ORDER BY caregiver_user_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCaregiver)
}

// ListCaregivers returns every caregiver ordered by caregiver_user_id.
func (s *Store) ListCaregivers(ctx context.Context) ([]models.Caregiver, error) {
	caregivers, err := withTx(ctx, s, func(sc *scope) ([]models.Caregiver, error) {
		return sc.listCaregivers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list caregivers: %w", err)
	}
	return caregivers, nil
}

// ListCaregiverListings returns caregivers joined with their user's name and contact fields.
func (s *Store) ListCaregiverListings(ctx context.Context) ([]models.CaregiverListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.CaregiverListing, error) {
		rows, err := sc.query(ctx, `
			SELECT c.caregiver_user_id, c.photo, c.gender, c.caregiving_type, c.hourly_rate,
			       u.given_name, u.surname, u.email, u.city, u.phone_number
			FROM caregiver c
			JOIN users u ON c.caregiver_user_id = u.user_id
			ORDER BY c.caregiver_user_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.CaregiverListing, error) {
			var l models.CaregiverListing
			err := row.Scan(
				&l.CaregiverUserID, &l.Photo, &l.Gender, &l.CaregivingType, &l.HourlyRate,
				&l.GivenName, &l.Surname, &l.Email, &l.City, &l.PhoneNumber,
			)
			return l, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list caregiver listings: %w", err)
	}
	return listings, nil
}

// UpdateCaregiver replaces photo, gender, caregiving_type and hourly_rate.
func (s *Store) UpdateCaregiver(ctx context.Context, caregiverID int64, c models.Caregiver) (models.Caregiver, error) {
	c.CaregiverUserID = caregiverID
	if err := validateCaregiver(c); err != nil {
		return models.Caregiver{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx, `
			UPDATE caregiver
			SET photo = ?, gender = ?, caregiving_type = ?, hourly_rate = ?
			WHERE caregiver_user_id = ?
		`, c.Photo, c.Gender, c.CaregivingType, c.HourlyRate, caregiverID)
	})
	if err != nil {
		return models.Caregiver{}, fmt.Errorf("update caregiver %d: %w", caregiverID, err)
	}
	return c, nil
}

// DeleteCaregiver removes the caregiver's job applications and appointments,
// then the caregiver row. The underlying user is kept.
func (s *Store) DeleteCaregiver(ctx context.Context, caregiverID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteCaregiverPlan, caregiverID)
}
