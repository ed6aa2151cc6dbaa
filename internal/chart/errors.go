package chart

import "errors"

var (
	ErrMissingField = errors.New("missing field")
	ErrBadEnum      = errors.New("unknown enum value")
	ErrBadType      = errors.New("wrong field type")
	ErrNoPath       = errors.New("chart has neither angleData nor pathData")
)
