package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"customblog/internal/models"
)

// MemberStore handles all member-related database operations.
type MemberStore struct {
	db DBTX
}

// NewMemberStore creates a new MemberStore with the given database connection.
func NewMemberStore(db DBTX) *MemberStore {
	return &MemberStore{db: db}
}

const memberColumns = `id, email, password_hash, display_name, created_at`

func scanMember(scanner interface{ Scan(...any) error }) (*models.Member, error) {
	var m models.Member
	if err := scanner.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.DisplayName, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByEmail retrieves a member by email address, ignoring case. Returns nil if not found.
func (s *MemberStore) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE LOWER(email) = LOWER($1)`, email)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find member by email: %w", err)
	}
	return m, nil
}

// FindByID retrieves a member by UUID. Returns nil if not found.
func (s *MemberStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find member by id: %w", err)
	}
	return m, nil
}

// Create inserts a member whose PasswordHash is already set. The generated
// ID and timestamp are written back into m.
func (s *MemberStore) Create(ctx context.Context, m *models.Member) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO members (id, email, password_hash, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, m.ID, m.Email, m.PasswordHash, m.DisplayName).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the member's stored hash.
func CheckPassword(m *models.Member, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}
