package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrUserIDRequired        = errors.New("user_id claim is missing or invalid")
)
