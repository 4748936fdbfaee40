package domain

import "strings"

type UserProfile struct {
	Email       string
	DisplayName string
	CreatedAt   string
	UpdatedAt   string
}

// DisplayText returns the display name, or the local part of the email
// when no name was set.
func (p *UserProfile) DisplayText() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.DisplayName); name != "" {
		return name
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}
