package rbac

import "go-hris-leave/internal/domain"

type (
	EnforceRequest  = domain.EnforceRequest
	EnforceResponse = domain.EnforceResponse
)
