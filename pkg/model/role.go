package model

import (
	"errors"
	"fmt"
)

// Role is the closed set of account roles. Free-form role strings from the
// legacy data are rejected at the boundary.
type Role string

const (
	RoleCustomer Role = "customer"
	RolePubOwner Role = "pub_owner"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleCustomer, RolePubOwner, RoleAdmin:
		return Role(value), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownRole, value)
}

// RoleSet is stored as a JSON array on the user row.
type RoleSet []Role

func (s RoleSet) Has(role Role) bool {
	for _, candidate := range s {
		if candidate == role {
			return true
		}
	}

	return false
}

func (s RoleSet) Add(role Role) RoleSet {
	if s.Has(role) {
		return s
	}

	return append(s, role)
}

// BottleSize is the closed set of bottle formats sold in the cantina.
type BottleSize string

const (
	BottleSize025  BottleSize = "0.25L"
	BottleSize033  BottleSize = "0.33L"
	BottleSize0375 BottleSize = "0.375L"
	BottleSize05   BottleSize = "0.5L"
	BottleSize075  BottleSize = "0.75L"
	BottleSize15   BottleSize = "1.5L"
)

var ErrUnknownBottleSize = errors.New("unknown bottle size")

func ParseBottleSize(value string) (BottleSize, error) {
	switch BottleSize(value) {
	case BottleSize025, BottleSize033, BottleSize0375, BottleSize05, BottleSize075, BottleSize15:
		return BottleSize(value), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownBottleSize, value)
}

// ItemType identifies what a favorite, review or report points at.
type ItemType string

const (
	ItemPub     ItemType = "pub"
	ItemBrewery ItemType = "brewery"
	ItemBeer    ItemType = "beer"
)

var ErrUnknownItemType = errors.New("unknown item type")

func ParseItemType(value string) (ItemType, error) {
	switch ItemType(value) {
	case ItemPub, ItemBrewery, ItemBeer:
		return ItemType(value), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownItemType, value)
}
