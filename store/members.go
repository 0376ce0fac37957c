// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const memberColumns = `member_user_id, house_rules, dependent_description`

func scanMember(row rowScanner) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.MemberUserID, &m.HouseRules, &m.DependentDescription)
	return m, err
}

// CreateMember registers an existing user as a member.
func (s *Store) CreateMember(ctx context.Context, m models.Member) (models.Member, error) {
	if err := validateMember(m); err != nil {
		return models.Member{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		_, err := sc.exec(ctx, `
			INSERT INTO member (member_user_id, house_rules, dependent_description)
			VALUES (?, ?, ?)
		`, m.MemberUserID, m.HouseRules, m.DependentDescription)
		return err
	})
	if err != nil {
		return models.Member{}, fmt.Errorf("create member %d: %w", m.MemberUserID, err)
	}
	return m, nil
}

// GetMember returns one member by member_user_id.
func (s *Store) GetMember(ctx context.Context, memberID int64) (models.Member, error) {
	m, err := withTx(ctx, s, func(sc *scope) (models.Member, error) {
		m, err := scanMember(sc.row(ctx, `SELECT `+memberColumns+` FROM member WHERE member_user_id = ?`, memberID))
		return m, classify(err)
	})
	if err != nil {
		return models.Member{}, fmt.Errorf("get member %d: %w", memberID, err)
	}
	return m, nil
}

func (sc *scope) listMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := sc.query(ctx, `SELECT `+memberColumns+` FROM member ORDER BY member_user_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanMember)
}

// ListMembers returns every member ordered by member_user_id.
func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	members, err := withTx(ctx, s, func(sc *scope) ([]models.Member, error) {
		return sc.listMembers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ListMemberListings returns members joined with their user's name and contact fields.
func (s *Store) ListMemberListings(ctx context.Context) ([]models.MemberListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.MemberListing, error) {
		rows, err := sc.query(ctx, `
			SELECT m.member_user_id, m.house_rules, m.dependent_description,
			       u.given_name, u.surname, u.email, u.city, u.phone_number
			FROM member m
			JOIN users u ON m.member_user_id = u.user_id
			ORDER BY m.member_user_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.MemberListing, error) {
			var l models.MemberListing
			err := row.Scan(
				&l.MemberUserID, &l.HouseRules, &l.DependentDescription,
				&l.GivenName, &l.Surname, &l.Email, &l.City, &l.PhoneNumber,
			)
			return l, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list member listings: %w", err)
	}
	return listings, nil
}

// UpdateMember replaces house_rules and dependent_description.
func (s *Store) UpdateMember(ctx context.Context, memberID int64, m models.Member) (models.Member, error) {
	m.MemberUserID = memberID
	if err := validateMember(m); err != nil {
		return models.Member{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx, `
			UPDATE member
			SET house_rules = ?, dependent_description = ?
			WHERE member_user_id = ?
		`, m.HouseRules, m.DependentDescription, memberID)
	})
	if err != nil {
		return models.Member{}, fmt.Errorf("update member %d: %w", memberID, err)
	}
	return m, nil
}

// DeleteMember removes, in order, applications to the member's jobs, those
// jobs, the member's appointments, the address and the member row.
func (s *Store) DeleteMember(ctx context.Context, memberID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteMemberPlan, memberID)
}
