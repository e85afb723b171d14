package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"shopgate/pkg/platform/sentinel"
)

// Directory invariants (lookup, duplicate email, ErrNotFound) are validated
// here to protect service behavior outside HTTP-level coverage.
type InMemoryDirectorySuite struct {
	suite.Suite
	dir *InMemoryDirectory
}

func (s *InMemoryDirectorySuite) SetupTest() {
	s.dir = NewInMemoryDirectory()
}

func TestInMemoryDirectorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryDirectorySuite))
}

func (s *InMemoryDirectorySuite) newUser(email string) *User {
	return &User{
		ID:        uuid.NewString(),
		Name:      "Jane Doe",
		Email:     email,
		Role:      RoleCustomer,
		CreatedAt: time.Now(),
	}
}

func (s *InMemoryDirectorySuite) TestLookupBehavior() {
	s.Run("returns user by ID when exists", func() {
		user := s.newUser("jane.doe@example.com")
		s.Require().NoError(s.dir.Create(context.Background(), user))

		found, err := s.dir.FindByID(context.Background(), user.ID)
		s.Require().NoError(err)
		s.Equal(user.Email, found.Email)
		s.Equal(user.Role, found.Role)
	})

	s.Run("returns user by email when exists", func() {
		user := s.newUser("email.lookup@example.com")
		s.Require().NoError(s.dir.Create(context.Background(), user))

		found, err := s.dir.FindByEmail(context.Background(), user.Email)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("email lookup is case and whitespace insensitive", func() {
		user := s.newUser("Mixed.Case@Example.com")
		s.Require().NoError(s.dir.Create(context.Background(), user))

		found, err := s.dir.FindByEmail(context.Background(), "  mixed.case@example.com ")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
		s.Equal("mixed.case@example.com", found.Email)
	})

	s.Run("returns ErrNotFound when user ID does not exist", func() {
		_, err := s.dir.FindByID(context.Background(), uuid.NewString())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when email does not exist", func() {
		_, err := s.dir.FindByEmail(context.Background(), "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryDirectorySuite) TestDuplicateEmail() {
	s.Run("second create with same email returns ErrConflict", func() {
		first := s.newUser("taken@example.com")
		s.Require().NoError(s.dir.Create(context.Background(), first))

		second := s.newUser("taken@example.com")
		err := s.dir.Create(context.Background(), second)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("duplicate detection ignores email casing", func() {
		first := s.newUser("casing@example.com")
		s.Require().NoError(s.dir.Create(context.Background(), first))

		second := s.newUser("CASING@example.com")
		err := s.dir.Create(context.Background(), second)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryDirectorySuite) TestMutationIsolation() {
	s.Run("mutating a returned user does not change the stored record", func() {
		user := s.newUser("isolated@example.com")
		s.Require().NoError(s.dir.Create(context.Background(), user))

		found, err := s.dir.FindByID(context.Background(), user.ID)
		s.Require().NoError(err)
		found.Role = RoleAdmin

		again, err := s.dir.FindByID(context.Background(), user.ID)
		s.Require().NoError(err)
		s.Equal(RoleCustomer, again.Role)
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("hash and compare round trip", func(t *testing.T) {
		hash, err := HashPassword("secret1")
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		u := &User{PasswordHash: hash}
		if !u.ComparePassword("secret1") {
			t.Fatal("expected matching password to compare true")
		}
		if u.ComparePassword("secret2") {
			t.Fatal("expected non-matching password to compare false")
		}
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		if _, err := HashPassword("short"); err == nil {
			t.Fatal("expected error for password under minimum length")
		}
	})
}
