package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Kebijakan statis dua role: EMPLOYEE untuk operasi self-service,
// ADMIN mewarisi EMPLOYEE plus review dan manajemen master data.
var policies = [][]string{
	{"EMPLOYEE", "attendance", "read"},
	{"EMPLOYEE", "attendance", "create"},
	{"EMPLOYEE", "leave", "read"},
	{"EMPLOYEE", "leave", "create"},
	{"EMPLOYEE", "compoff", "read"},
	{"EMPLOYEE", "compoff", "create"},
	{"EMPLOYEE", "holiday", "read"},
	{"EMPLOYEE", "notification", "read"},
	{"EMPLOYEE", "notification", "write"},
	{"EMPLOYEE", "calendar", "read"},
	{"EMPLOYEE", "profile", "read"},
	{"EMPLOYEE", "profile", "write"},

	{"ADMIN", "leave", "approve"},
	{"ADMIN", "compoff", "approve"},
	{"ADMIN", "holiday", "manage"},
	{"ADMIN", "employee", "read"},
	{"ADMIN", "employee", "manage"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	if _, err := enforcer.AddGroupingPolicy("ADMIN", "EMPLOYEE"); err != nil {
		return nil, err
	}

	return enforcer, nil
}
