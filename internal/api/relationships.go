package api

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/monicli/internal/client/models"
)

// Relationship is the wire representation of a relationship between two
// contacts.
type Relationship struct {
	ID               int64                    `json:"id"`
	ContactIs        *models.Contact          `json:"contact_is"`
	OfContact        *models.Contact          `json:"of_contact"`
	RelationshipType *models.RelationshipType `json:"relationship_type"`
}

// Payload converts the wire object into the local record payload.
func (r Relationship) Payload() models.Relationship {
	p := models.Relationship{}
	if r.ContactIs != nil {
		p.ContactIs = r.ContactIs.ID
	}
	if r.OfContact != nil {
		p.OfContact = r.OfContact.ID
	}
	if r.RelationshipType != nil {
		p.RelationshipTypeID = r.RelationshipType.ID
	}
	return p
}

// ListRelationships returns the relationships of a contact.
func (c *Client) ListRelationships(ctx context.Context, contactID int64) ([]Relationship, error) {
	path := fmt.Sprintf("/contacts/%d/relationships", contactID)
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[Relationship], error) {
		return list[Relationship](ctx, c, path, page, nil)
	})
}

func (c *Client) CreateRelationship(ctx context.Context, rel models.Relationship) (*Relationship, error) {
	return create[Relationship](ctx, c, "/relationships", rel)
}

// UpdateRelationship changes the type of an existing relationship; the
// API only allows the type to change.
func (c *Client) UpdateRelationship(ctx context.Context, id int64, rel models.Relationship) (*Relationship, error) {
	body := struct {
		RelationshipTypeID int64 `json:"relationship_type_id"`
	}{RelationshipTypeID: rel.RelationshipTypeID}
	return update[Relationship](ctx, c, fmt.Sprintf("/relationships/%d", id), body)
}

func (c *Client) DeleteRelationship(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/relationships/%d", id))
}

// ListRelationshipTypes returns the reference list of relation kinds.
func (c *Client) ListRelationshipTypes(ctx context.Context) ([]models.RelationshipType, error) {
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[models.RelationshipType], error) {
		return list[models.RelationshipType](ctx, c, "/relationshiptypes", page, nil)
	})
}

// ListRelationshipTypeGroups returns the reference list of relation groups.
func (c *Client) ListRelationshipTypeGroups(ctx context.Context) ([]models.RelationshipTypeGroup, error) {
	return fetchAll(ctx, func(ctx context.Context, page int) (Page[models.RelationshipTypeGroup], error) {
		return list[models.RelationshipTypeGroup](ctx, c, "/relationshiptypegroups", page, nil)
	})
}
