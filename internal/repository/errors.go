// Package repository maps normalized relational rows to domain entities and
// owns every multi-table transactional write.
package repository

import "errors"

// ErrNotFound is returned when the requested entity does not exist. Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a registration reuses an email. Handlers
// translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateCode is returned when a consumption-unit code collides with an
// existing unit. Handlers translate it into HTTP 409.
var ErrDuplicateCode = errors.New("uc code already exists")

// ErrBadDistribution is returned when a plant's distribution slices do not
// sum to 100 percent or repeat a unit. Handlers translate it into HTTP 400.
var ErrBadDistribution = errors.New("distribution percentages must be positive, unique per unit and sum to 100")
