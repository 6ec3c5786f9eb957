package mih

import "errors"

// ErrInputInvalid is returned for malformed hex, mismatched bit-array
// lengths, or invalid constructor parameters.
var ErrInputInvalid = errors.New("mih: input invalid")

// ErrStateViolation is returned when Update is called on a trained
// index, or Query is called before training.
var ErrStateViolation = errors.New("mih: state violation")
