package compose

import (
	"github.com/pkg/errors"
)

// ErrMultipleInvocation is returned when a continuation is called more than once.
var ErrMultipleInvocation = errors.New("next() is called multiple times!") //nolint:stylecheck
