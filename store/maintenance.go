// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

// UpdatePhoneByName sets phone_number on every user with the given name and
// returns how many rows changed.
func (s *Store) UpdatePhoneByName(ctx context.Context, givenName, surname, phone string) (int64, error) {
	if blank(givenName) || blank(surname) {
		return 0, invalid("given_name and surname are required")
	}
	if blank(phone) {
		return 0, invalid("phone_number is required")
	}

	n, err := withTx(ctx, s, func(sc *scope) (int64, error) {
		return sc.execCount(ctx,
			`UPDATE users SET phone_number = ? WHERE given_name = ? AND surname = ?`,
			phone, givenName, surname,
		)
	})
	if err != nil {
		return 0, fmt.Errorf("update phone for %s %s: %w", givenName, surname, err)
	}
	return n, nil
}

// ApplyCommission raises every hourly_rate: rates under 10 gain a flat 0.3,
// the rest grow by 10 percent.
func (s *Store) ApplyCommission(ctx context.Context) (int64, error) {
	n, err := withTx(ctx, s, func(sc *scope) (int64, error) {
		return sc.execCount(ctx, `
			UPDATE caregiver
			SET hourly_rate = CASE
				WHEN hourly_rate < 10 THEN hourly_rate + 0.3
				ELSE hourly_rate * 1.10
			END
		`)
	})
	if err != nil {
		return 0, fmt.Errorf("apply commission: %w", err)
	}
	return n, nil
}

// ids collects a single int64 column.
func (sc *scope) ids(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := sc.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	})
}

// cascadeEach runs plan for every key in one transaction.
func (s *Store) cascadeEach(ctx context.Context, plan cascadePlan, query string, args ...any) ([]models.DeletedRows, error) {
	return withTx(ctx, s, func(sc *scope) ([]models.DeletedRows, error) {
		keys, err := sc.ids(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		deleted := []models.DeletedRows{}
		for _, key := range keys {
			more, err := sc.cascade(ctx, plan, key)
			if err != nil {
				return nil, err
			}
			deleted = mergeDeleted(deleted, more)
		}
		return deleted, nil
	})
}

// DeleteJobsByMemberName deletes every job posted by members with the given
// name, applications first.
func (s *Store) DeleteJobsByMemberName(ctx context.Context, givenName, surname string) ([]models.DeletedRows, error) {
	if blank(givenName) || blank(surname) {
		return nil, invalid("given_name and surname are required")
	}

	deleted, err := s.cascadeEach(ctx, deleteJobPlan, `
		SELECT j.job_id
		FROM job j
		JOIN users u ON j.member_user_id = u.user_id
		WHERE u.given_name = ? AND u.surname = ?
		ORDER BY j.job_id
	`, givenName, surname)
	if err != nil {
		return nil, fmt.Errorf("delete jobs of %s %s: %w", givenName, surname, err)
	}
	return deleted, nil
}

// DeleteMembersOnStreet deletes every member whose address is on street,
// with the full member cascade.
func (s *Store) DeleteMembersOnStreet(ctx context.Context, street string) ([]models.DeletedRows, error) {
	if blank(street) {
		return nil, invalid("street is required")
	}

	deleted, err := s.cascadeEach(ctx, deleteMemberPlan, `
		SELECT member_user_id FROM address WHERE street = ? ORDER BY member_user_id
	`, street)
	if err != nil {
		return nil, fmt.Errorf("delete members on %s: %w", street, err)
	}
	return deleted, nil
}
