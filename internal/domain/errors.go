package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrGoalExceeded       = errors.New("contribution exceeds goal")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrCampaignFunded     = errors.New("campaign has contributions")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
