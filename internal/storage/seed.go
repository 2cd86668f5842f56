package storage

import (
	"log"
	"time"

	"github.com/UniPortal-io/uniportal/internal/models"
)

type seedUser struct {
	id       int64
	email    string
	password string
	name     string
	role     models.Role
	blocked  bool
}

// Demo dataset. The blocked account exercises the lockout path and
// test10 carries a password at the exact minimum length.
var seedUsers = []seedUser{
	{1, "student@gmail.com", "Passw0rd!23", "Laura Student", models.RoleStudent, false},
	{2, "teacher@gmail.com", "Pr0fessor!24", "Mark Teacher", models.RoleTeacher, false},
	{3, "admin@gmail.com", "Adm1n!Secure", "Carmen Admin", models.RoleAdministrator, false},
	{4, "blocked@gmail.com", "Block3d!Pass", "Benny Blocked", models.RoleStudent, true},
	{5, "test10@gmail.com", "Abcd1234!@", "Tina Boundary", models.RoleStudent, false},
}

// seed installs the default dataset on first initialization only.
func (s *Store) seed() {
	if s.db == nil || s.hasKey(keyUsers) {
		return
	}

	now := s.now()
	users := make([]models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		user := models.User{
			ID:     su.id,
			Email:  su.email,
			Name:   su.name,
			Role:   su.role,
			Status: models.StatusActive,
		}
		if err := user.SetPassword(su.password); err != nil {
			log.Printf("storage: seeding %s: %v", su.email, err)
			continue
		}
		if su.blocked {
			until := now.Add(30 * time.Minute)
			user.BlockedUntil = &until
			user.LoginAttempts = 4
		}
		users = append(users, user)
	}

	s.SaveUsers(users)
	s.SaveTokens([]models.RecoveryToken{})
	log.Printf("storage: seeded %d default accounts", len(users))
}
