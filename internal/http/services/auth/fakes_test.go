package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/sp1ral-dev/veridian/internal/domain/repository"
	"github.com/sp1ral-dev/veridian/internal/profile"
	"github.com/sp1ral-dev/veridian/internal/security/keys"
	"github.com/sp1ral-dev/veridian/internal/token"
)

// fakeRepo es un IdentityRepository en memoria.
type fakeRepo struct {
	byEmail map[string]*repository.Identity
	byID    map[string]*repository.Identity

	creates int
	deletes []string

	failExists bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*repository.Identity),
		byID:    make(map[string]*repository.Identity),
	}
}

func (f *fakeRepo) put(id *repository.Identity) {
	f.byEmail[strings.ToLower(id.Email)] = id
	f.byID[id.ID] = id
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if f.failExists {
		return false, context.DeadlineExceeded
	}
	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*repository.Identity, error) {
	id, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return id, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*repository.Identity, error) {
	ident, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ident, nil
}

func (f *fakeRepo) Create(_ context.Context, identity *repository.Identity) (*repository.Identity, error) {
	f.creates++
	if _, ok := f.byEmail[strings.ToLower(identity.Email)]; ok {
		return nil, repository.ErrConflict
	}
	cp := *identity
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.put(&cp)
	return &cp, nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	ident, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	ident.PasswordHash = &hash
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	ident, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.deletes = append(f.deletes, id)
	delete(f.byID, id)
	delete(f.byEmail, strings.ToLower(ident.Email))
	return nil
}

// fakeGateway es un profile.Gateway controlable.
type fakeGateway struct {
	profiles map[string]*profile.Info
	phones   map[string]bool // teléfono → tomado

	createErr  error
	getErr     error
	uniqueErr  error
	updateRes  *profile.UpdateResult
	updateErr  error
	createHits int
	uniqueHits int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		profiles: make(map[string]*profile.Info),
		phones:   make(map[string]bool),
	}
}

func (f *fakeGateway) CreateProfile(_ context.Context, userID string, seed profile.Seed) (*profile.Info, error) {
	f.createHits++
	if f.createErr != nil {
		return nil, f.createErr
	}
	info := &profile.Info{
		Username:    seed.Username,
		AvatarKey:   seed.AvatarKey,
		PhoneNumber: seed.PhoneNumber,
		DateOfBirth: seed.DateOfBirth,
		GenderID:    seed.GenderID,
	}
	f.profiles[userID] = info
	return info, nil
}

func (f *fakeGateway) GetProfile(_ context.Context, userID string) (*profile.Info, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	info, ok := f.profiles[userID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return info, nil
}

func (f *fakeGateway) UpdateProfile(_ context.Context, _ string, _ profile.Seed) (*profile.UpdateResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateRes, nil
}

func (f *fakeGateway) IsPhoneUnique(_ context.Context, phone string) (bool, error) {
	f.uniqueHits++
	if f.uniqueErr != nil {
		return false, f.uniqueErr
	}
	return !f.phones[phone], nil
}

// newTestTokens construye un token.Service con una clave RSA efímera.
func newTestTokens(t *testing.T) *token.Service {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating rsa key: %v", err)
	}
	kp := &keys.KeyPair{Private: priv, Public: &priv.PublicKey}
	return token.New(kp, 15*time.Minute, 24*time.Hour)
}
