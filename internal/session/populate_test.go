package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/idbridge/internal/cache/memory"
	"github.com/dropDatabas3/idbridge/internal/store/core"
)

type fakeUserRepo struct {
	user  *core.UserProfile
	err   error
	calls int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*core.UserProfile, error) {
	f.calls++
	return f.user, f.err
}

func (f *fakeUserRepo) Update(ctx context.Context, u *core.UserProfile) error { return nil }

func (f *fakeUserRepo) EnsureByProviderID(ctx context.Context, provider, externalID, email string) (*core.UserProfile, error) {
	return nil, errors.New("unexpected")
}

type fakeRoleRepo struct {
	roles []string
	err   error
	calls int
}

func (f *fakeRoleRepo) RolesByUserID(ctx context.Context, id string) ([]string, error) {
	f.calls++
	return f.roles, f.err
}

func newPopulator(users *fakeUserRepo, roles *fakeRoleRepo) *Populator {
	return NewPopulator(memory.New(time.Minute), users, roles)
}

func TestPopulate_FillIfEmpty(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{
		ID:          "u1",
		Email:       "store@example.com",
		FirstName:   "Jane",
		LastName:    "Doe",
		DisplayName: "Jane Doe",
	}}
	roles := &fakeRoleRepo{roles: []string{"admin"}}
	p := newPopulator(users, roles)

	sess := Session{ID: "s1", Email: "session@example.com"}
	require.NoError(t, p.Populate(context.Background(), &sess, "u1"))

	// el email de la sesión gana; los campos vacíos se completan
	require.Equal(t, "session@example.com", sess.Email)
	require.Equal(t, "Jane", sess.FirstName)
	require.Equal(t, "Doe", sess.LastName)
	require.Equal(t, "Jane Doe", sess.DisplayName)
	require.Equal(t, []string{"admin"}, sess.Roles)
}

func TestPopulate_OverwriteRolesAndPicture(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{ID: "u1", ProfileURL: "http://cdn/new.png"}}
	roles := &fakeRoleRepo{roles: []string{"viewer"}}
	p := newPopulator(users, roles)

	sess := Session{
		ID:         "s1",
		ProfileURL: "http://cdn/stale.png",
		Roles:      []string{"admin", "stale"},
	}
	require.NoError(t, p.Populate(context.Background(), &sess, "u1"))

	require.Equal(t, "http://cdn/new.png", sess.ProfileURL)
	require.Equal(t, []string{"viewer"}, sess.Roles)
}

func TestPopulate_DefaultAvatar(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{ID: "u1"}}
	roles := &fakeRoleRepo{}
	p := newPopulator(users, roles)

	var sess Session
	require.NoError(t, p.Populate(context.Background(), &sess, "u1"))
	require.Equal(t, DefaultProfileURL, sess.ProfileURL)
}

func TestPopulate_SnapshotCached(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{ID: "u1", Email: "a@b.c"}}
	roles := &fakeRoleRepo{roles: []string{"admin"}}
	p := newPopulator(users, roles)

	for i := 0; i < 3; i++ {
		var sess Session
		require.NoError(t, p.Populate(context.Background(), &sess, "u1"))
	}

	// dentro del TTL ambas lecturas vienen del cache
	require.Equal(t, 1, users.calls)
	require.Equal(t, 1, roles.calls)
}

func TestPopulate_NullSnapshotEntry(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{ID: "u1", Email: "a@b.c"}}
	roles := &fakeRoleRepo{roles: []string{"admin"}}

	// una entrada null en un keyspace compartido no debe hacer caer el
	// populate: se recomputa desde el store
	mem := memory.New(time.Minute)
	mem.Set(core.UserCacheKey("u1"), []byte(`null`), time.Minute)
	p := NewPopulator(mem, users, roles)

	var sess Session
	require.NoError(t, p.Populate(context.Background(), &sess, "u1"))
	require.Equal(t, "a@b.c", sess.Email)
	require.Equal(t, 1, users.calls)
}

func TestPopulate_UserLoadErrorPropagates(t *testing.T) {
	users := &fakeUserRepo{err: core.ErrNotFound}
	roles := &fakeRoleRepo{}
	p := newPopulator(users, roles)

	var sess Session
	err := p.Populate(context.Background(), &sess, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
	require.Equal(t, 0, roles.calls)
}

func TestPopulate_RoleLoadErrorPropagates(t *testing.T) {
	users := &fakeUserRepo{user: &core.UserProfile{ID: "u1"}}
	roles := &fakeRoleRepo{err: errors.New("db down")}
	p := newPopulator(users, roles)

	var sess Session
	require.Error(t, p.Populate(context.Background(), &sess, "u1"))
}
