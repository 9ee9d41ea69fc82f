package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeIDExists   = errors.New("employee id already exists")
	ErrPinTaken           = errors.New("pin is already in use by another employee")
	ErrPinIncorrect       = errors.New("current pin is incorrect")
	ErrCredentialTaken    = errors.New("platform credential is already bound to another employee")
	ErrNoPendingChallenge = errors.New("no pending enrollment challenge for this employee")
)
