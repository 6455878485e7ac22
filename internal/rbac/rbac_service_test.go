package rbac

import (
	"testing"

	"go-attendly/internal/domain"
	"go-attendly/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return NewService(enforcer)
}

func TestEnforce_EmployeePermissions(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{
		EmployeeID: "e1", Role: RoleEmployee, Resource: "leave", Action: "create",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: "e1", Role: RoleEmployee, Resource: "leave", Action: "approve",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{
		EmployeeID: "e1", Role: RoleEmployee, Resource: "holiday", Action: "manage",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_AdminInheritsEmployee(t *testing.T) {
	svc := newTestService(t)

	for _, tc := range []struct {
		resource, action string
	}{
		{"leave", "approve"},
		{"compoff", "approve"},
		{"holiday", "manage"},
		{"attendance", "create"},
		{"calendar", "read"},
	} {
		allowed, err := svc.Enforce(domain.EnforceRequest{
			EmployeeID: "a1", Role: RoleAdmin, Resource: tc.resource, Action: tc.action,
		})
		assert.NoError(t, err)
		assert.True(t, allowed, "admin should be allowed %s:%s", tc.resource, tc.action)
	}
}
