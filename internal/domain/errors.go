package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateSlabName  = errors.New("a tax slab with this name already exists")
	ErrDuplicateInvoiceNo = errors.New("a tax entry with this invoice number already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrAlreadySeeded      = errors.New("tax slabs already exist")
)
