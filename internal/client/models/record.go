// Package models defines client-side data models: trackable records mirrored
// between the local store and the Monica API, and the remote-only types
// (contacts, activities) the client reads but never caches.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncStatus is the lifecycle tag on a record indicating whether it matches
// the server (synced), awaits push (pending), or the last attempt errored
// (failed). There is no persisted "syncing" state; an in-flight push is
// transient in memory only.
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusFailed  SyncStatus = "failed"
)

// Valid reports whether s is one of the three persisted statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusPending, SyncStatusSynced, SyncStatusFailed:
		return true
	}
	return false
}

// RecordType classifies a trackable record.
type RecordType string

const (
	RecordTypeCall         RecordType = "call"
	RecordTypeDebt         RecordType = "debt"
	RecordTypeConversation RecordType = "conversation"
	RecordTypeRelationship RecordType = "relationship"
	RecordTypeDayEntry     RecordType = "day_entry"
)

// RecordTypes lists every trackable type, in sync-sweep display order.
var RecordTypes = []RecordType{
	RecordTypeCall,
	RecordTypeDebt,
	RecordTypeConversation,
	RecordTypeRelationship,
	RecordTypeDayEntry,
}

// Record is one row of the local mirror. The payload holds the typed domain
// fields as JSON; RemoteID stays nil until the first successful sync.
type Record struct {
	LocalID         string
	Type            RecordType
	RemoteID        *int64
	ContactID       int64
	Payload         json.RawMessage
	SyncStatus      SyncStatus
	SyncError       string
	LastSyncAttempt *time.Time
	Deleted         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRecord creates a local-only record in pending state with a fresh
// local identifier and timestamps.
func NewRecord(t RecordType, contactID int64, payload any) (*Record, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", t, err)
	}
	now := time.Now().UTC()
	return &Record{
		LocalID:    uuid.NewString(),
		Type:       t,
		ContactID:  contactID,
		Payload:    b,
		SyncStatus: SyncStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Decode unmarshals the payload into v.
func (r *Record) Decode(v any) error {
	return json.Unmarshal(r.Payload, v)
}

// Touch updates UpdatedAt; call on every local mutation.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// SetPayload replaces the payload and re-arms the record for sync: a synced
// or failed record drops back to pending so the next sweep picks it up.
func (r *Record) SetPayload(payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", r.Type, err)
	}
	r.Payload = b
	r.SyncStatus = SyncStatusPending
	r.SyncError = ""
	r.Touch()
	return nil
}

// MarkDeleted soft-deletes the record. The row stays in the store until the
// server confirms the delete; a synced record is re-armed to pending so the
// delete propagates.
func (r *Record) MarkDeleted() {
	r.Deleted = true
	if r.SyncStatus == SyncStatusSynced {
		r.SyncStatus = SyncStatusPending
	}
	r.Touch()
}

// ApplyRemote refreshes the record from a server copy without re-arming it
// for sync: the payload and identifier are replaced and the row is marked
// synced. Used when mirroring fetched rows, never for local edits.
func (r *Record) ApplyRemote(remoteID int64, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", r.Type, err)
	}
	r.Payload = b
	r.RemoteID = &remoteID
	r.SyncStatus = SyncStatusSynced
	r.SyncError = ""
	r.Touch()
	return nil
}

// MarkSynced records a successful push: the server-assigned identifier is
// stamped and the last error cleared.
func (r *Record) MarkSynced(remoteID int64) {
	r.RemoteID = &remoteID
	r.SyncStatus = SyncStatusSynced
	r.SyncError = ""
	r.Touch()
}

// MarkFailed records a failed push attempt. The error is absorbed into the
// record as a displayable message; it is never re-raised to callers.
func (r *Record) MarkFailed(err error) {
	r.SyncStatus = SyncStatusFailed
	if err != nil {
		r.SyncError = err.Error()
	}
	now := time.Now().UTC()
	r.LastSyncAttempt = &now
	r.UpdatedAt = now
}

// Unsynced reports whether the record should be picked up by a sync sweep.
func (r *Record) Unsynced() bool {
	return r.SyncStatus == SyncStatusPending || r.SyncStatus == SyncStatusFailed
}
