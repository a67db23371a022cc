package service

import "errors"

var (
	ErrProfileNotFound      = errors.New("taste profile not found")
	ErrInvalidProfile       = errors.New("invalid taste profile")
	ErrInvalidStats         = errors.New("invalid user statistics")
	ErrEvaluationInProgress = errors.New("achievement evaluation already in progress")
	ErrUploadNotFound       = errors.New("photo upload not found")
	ErrUploadIncomplete     = errors.New("photo has not been uploaded yet")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
)
