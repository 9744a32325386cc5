package storage

import "errors"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")

	ErrPostNotFound      = errors.New("post not found")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrScheduledNotFound = errors.New("scheduled post not found or already published")
	ErrGuidelineNotFound = errors.New("seo guideline not found")
	ErrTemplateNotFound  = errors.New("content template not found")
	ErrJobNotFound       = errors.New("bulk content job not found")
)
