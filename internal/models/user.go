package models

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// User is a registered storefront account. It is created by the storefront,
// never by the admin client; only Status and IsBlocked change here.
type User struct {
	ID           string     `json:"_id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phoneNumber"`
	ISDCode      string     `json:"isdCode"`
	BusinessName string     `json:"businessName"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Status       UserStatus `json:"status"`
	IsBlocked    bool       `json:"isBlocked"`
}

func (u User) EntityID() string { return u.ID }

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserStats struct {
	TotalUsers    int `json:"totalUsers"`
	ApprovedUsers int `json:"approvedUsers"`
	PendingUsers  int `json:"pendingUsers"`
}

func ComputeUserStats(users []User) UserStats {
	stats := UserStats{TotalUsers: len(users)}
	for _, u := range users {
		switch u.Status {
		case UserStatusApproved:
			stats.ApprovedUsers++
		case UserStatusPending:
			stats.PendingUsers++
		}
	}
	return stats
}
