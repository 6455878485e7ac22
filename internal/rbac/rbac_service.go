package rbac

import (
	"sync"

	"go-attendly/internal/domain"

	"github.com/casbin/casbin/v2"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
