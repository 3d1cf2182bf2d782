package api

import "errors"

// Server construction errors
var (
	ErrBoardCreate    = errors.New("failed to create board")
	ErrSolenoidCreate = errors.New("failed to create solenoid")
)
