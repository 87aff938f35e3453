package domain

import "errors"

var (
	ErrEmptyComment   = errors.New("comment body is empty")
	ErrCommentTooLong = errors.New("comment body exceeds 150 characters")
)

// MaxCommentLength counts runes of the sanitized body
const MaxCommentLength = 150
