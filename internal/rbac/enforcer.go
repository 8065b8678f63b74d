package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin = "Admin"
	RoleHR    = "HR"
	RoleUser  = "User"
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

// policies is the static permission table. sub inherits through g rules, so
// HR gets every User permission and Admin gets everything below it.
var policies = [][]string{
	// Every authenticated user
	{RoleUser, "positions", "read"},
	{RoleUser, "timeoff", "apply"},
	{RoleUser, "timeoff", "read"},
	{RoleUser, "balances", "read"},

	// HR staff
	{RoleHR, "employees", "read"},
	{RoleHR, "employees", "write"},
	{RoleHR, "positions", "write"},
	{RoleHR, "salaries", "read"},
	{RoleHR, "salaries", "write"},
	{RoleHR, "timesheets", "read"},
	{RoleHR, "timesheets", "write"},
	{RoleHR, "balances", "read-all"},
	{RoleHR, "balances", "write"},
	{RoleHR, "timeoff", "read-all"},
	{RoleHR, "timeoff", "decide"},

	// Admin only
	{RoleAdmin, "users", "read"},
	{RoleAdmin, "users", "write"},
}

var roleHierarchy = [][]string{
	{RoleHR, RoleUser},
	{RoleAdmin, RoleHR},
}

type Service struct {
	enforcer *casbin.Enforcer
}

// NewService builds the enforcer from the embedded model and the static
// policy table. Policies are code, not data, so there is no adapter.
func NewService() (*Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("build enforcer: %w", err)
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}
	for _, g := range roleHierarchy {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("add grouping %v: %w", g, err)
		}
	}

	return &Service{enforcer: e}, nil
}

func (s *Service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}

// IsElevated reports whether the role may act on records owned by other
// employees. Used by handlers that restrict plain users to their own data.
func IsElevated(role string) bool {
	return role == RoleAdmin || role == RoleHR
}
