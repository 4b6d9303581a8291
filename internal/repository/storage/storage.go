// Package storage holds what the record repositories share.
package storage

import (
	"github.com/pkg/errors"
)

var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrEmployeeIDExists = errors.New("Employee ID already exists")
	ErrEmailExists      = errors.New("Email already exists")
	ErrAttendanceExists = errors.New("Attendance already marked for this date")
)
