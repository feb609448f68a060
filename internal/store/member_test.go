package store

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestMemberFindByEmail(t *testing.T) {
	db := testDB(t)
	m := testMember(t, db)
	s := NewMemberStore(db)

	found, err := s.FindByEmail(context.Background(), strings.ToUpper(m.Email))
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != m.ID {
		t.Fatalf("FindByEmail: got %+v, want member %s", found, m.ID)
	}
	if !CheckPassword(found, "secret") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(found, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestMemberFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewMemberStore(db)

	found, err := s.FindByEmail(context.Background(), "nobody-here@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, got %+v", found)
	}
}

func TestMemberDuplicateEmail(t *testing.T) {
	db := testDB(t)
	m := testMember(t, db)

	dup := *m
	dup.ID = uuid.Nil
	if err := NewMemberStore(db).Create(context.Background(), &dup); err == nil {
		cleanMember(db, dup.ID)
		t.Fatal("expected unique violation for duplicate email")
	}
}
