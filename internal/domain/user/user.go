// Package user holds the read-only view of the authenticated platform user.
package user

// User is the platform account as /auth/me reports it. The front-end
// only reads it to gate submissions.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	BalanceTokens int64  `json:"balance_tokens"`
}

// CanSubmit reports whether the user may start a generation: present with
// a positive token balance.
func (u *User) CanSubmit() bool {
	return u != nil && u.BalanceTokens > 0
}
