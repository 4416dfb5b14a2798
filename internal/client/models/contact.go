package models

import "strings"

// Contact is remote-only data; the client searches and reads contacts but
// never mirrors them locally.
type Contact struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Nickname     string `json:"nickname"`
	CompleteName string `json:"complete_name"`
	Description  string `json:"description"`
}

// DisplayName resolves the name to show for a contact. This is the single
// default-resolution point for the partially filled name fields the API
// returns: complete name, then first+last, then nickname, then a placeholder.
func (c Contact) DisplayName() string {
	if c.CompleteName != "" {
		return c.CompleteName
	}
	if full := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName)); full != "" {
		return full
	}
	if c.Nickname != "" {
		return c.Nickname
	}
	return "(unknown)"
}

// User is the authenticated account returned by the credential check.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Activity, Note and Task are remote-only reads used by the contact
// detail view.
type Activity struct {
	ID         int64  `json:"id"`
	Summary    string `json:"summary"`
	HappenedAt string `json:"happened_at"`
}

type Note struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// RelationshipType and RelationshipTypeGroup describe the available
// relation kinds; read-only reference data.
type RelationshipType struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	NameReverse         string `json:"name_reverse_relationship"`
	RelationshipGroupID int64  `json:"relationship_type_group_id"`
}

type RelationshipTypeGroup struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
