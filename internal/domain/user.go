package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// DashboardPath is where a freshly logged-in user of this role is sent.
func (r Role) DashboardPath() string {
	return "/dashboard/" + string(r)
}

type User struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Profile struct {
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionInactive SessionStatus = "inactive"
)

type UserSessionStatus struct {
	Username  string        `json:"username"`
	Role      Role          `json:"role"`
	Status    SessionStatus `json:"status"`
	LastLogin *time.Time    `json:"last_login"`
}
