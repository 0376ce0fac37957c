// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/caregivers/models"
)

const addressColumns = `member_user_id, house_number, street, town`

func scanAddress(row rowScanner) (models.Address, error) {
	var a models.Address
	err := row.Scan(&a.MemberUserID, &a.HouseNumber, &a.Street, &a.Town)
	return a, err
}

// CreateAddress stores the address of an existing member.
func (s *Store) CreateAddress(ctx context.Context, a models.Address) (models.Address, error) {
	if err := validateAddress(a); err != nil {
		return models.Address{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		_, err := sc.exec(ctx, `
			INSERT INTO address (member_user_id, house_number, street, town)
			VALUES (?, ?, ?, ?)
		`, a.MemberUserID, a.HouseNumber, a.Street, a.Town)
		return err
	})
	if err != nil {
		return models.Address{}, fmt.Errorf("create address %d: %w", a.MemberUserID, err)
	}
	return a, nil
}

// GetAddress returns the address of a member.
func (s *Store) GetAddress(ctx context.Context, memberID int64) (models.Address, error) {
	a, err := withTx(ctx, s, func(sc *scope) (models.Address, error) {
		a, err := scanAddress(sc.row(ctx, `SELECT `+addressColumns+` FROM address WHERE member_user_id = ?`, memberID))
		return a, classify(err)
	})
	if err != nil {
		return models.Address{}, fmt.Errorf("get address %d: %w", memberID, err)
	}
	return a, nil
}

func (sc *scope) listAddresses(ctx context.Context) ([]models.Address, error) {
	rows, err := sc.query(ctx, `SELECT `+addressColumns+` FROM address ORDER BY member_user_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAddress)
}

// ListAddresses returns every address ordered by member_user_id.
func (s *Store) ListAddresses(ctx context.Context) ([]models.Address, error) {
	addresses, err := withTx(ctx, s, func(sc *scope) ([]models.Address, error) {
		return sc.listAddresses(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// ListAddressListings returns addresses with the owning member's name.
func (s *Store) ListAddressListings(ctx context.Context) ([]models.AddressListing, error) {
	listings, err := withTx(ctx, s, func(sc *scope) ([]models.AddressListing, error) {
		rows, err := sc.query(ctx, `
			SELECT a.member_user_id, a.house_number, a.street, a.town,
			       u.given_name, u.surname
			FROM address a
			JOIN member m ON a.member_user_id = m.member_user_id
			JOIN users u ON m.member_user_id = u.user_id
			ORDER BY a.member_user_id
		`)
		if err != nil {
			return nil, err
		}
		return collect(rows, func(row rowScanner) (models.AddressListing, error) {
			var l models.AddressListing
			err := row.Scan(&l.MemberUserID, &l.HouseNumber, &l.Street, &l.Town, &l.GivenName, &l.Surname)
			return l, err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list address listings: %w", err)
	}
	return listings, nil
}

// UpdateAddress replaces house_number, street and town.
func (s *Store) UpdateAddress(ctx context.Context, memberID int64, a models.Address) (models.Address, error) {
	a.MemberUserID = memberID
	if err := validateAddress(a); err != nil {
		return models.Address{}, err
	}

	err := s.inTx(ctx, func(sc *scope) error {
		return sc.execOne(ctx, `
			UPDATE address
			SET house_number = ?, street = ?, town = ?
			WHERE member_user_id = ?
		`, a.HouseNumber, a.Street, a.Town, memberID)
	})
	if err != nil {
		return models.Address{}, fmt.Errorf("update address %d: %w", memberID, err)
	}
	return a, nil
}

// DeleteAddress removes a member's address.
func (s *Store) DeleteAddress(ctx context.Context, memberID int64) ([]models.DeletedRows, error) {
	return s.runCascade(ctx, deleteAddressPlan, memberID)
}
