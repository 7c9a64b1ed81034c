package group

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	groups  map[int64]*Group
	order   []int64
	members map[int64][]int64
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		groups:  make(map[int64]*Group),
		members: make(map[int64][]int64),
	}
}

func player(id int64) *Player {
	return &Player{
		ID:       id,
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
	}
}

func (f *fakeStore) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	f.nextID++
	g := &Group{
		ID:          f.nextID,
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Location:    req.Location,
		Chronic:     req.Chronic,
		Master:      req.Master,
	}
	f.groups[g.ID] = g
	f.order = append(f.order, g.ID)
	return g, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*Group, error) {
	return f.groups[id], nil
}

func (f *fakeStore) List(ctx context.Context, filter Filter) ([]*Group, error) {
	var out []*Group
	for _, id := range f.order {
		g := f.groups[id]
		if filter.MemberID != 0 {
			isMember, _ := f.IsPlayer(ctx, g.ID, filter.MemberID)
			if !isMember {
				continue
			}
		}
		if filter.Term != "" {
			term := strings.ToLower(filter.Term)
			if !strings.Contains(strings.ToLower(g.Name), term) &&
				!strings.Contains(strings.ToLower(g.Description), term) {
				continue
			}
		}
		copied := *g
		copied.Players, _ = f.GetPlayers(ctx, g.ID)
		copied.MasterUser = player(g.Master)
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Schedule != nil {
		g.Schedule = *req.Schedule
	}
	if req.Location != nil {
		g.Location = *req.Location
	}
	if req.Chronic != nil {
		g.Chronic = *req.Chronic
	}
	return g, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return ErrGroupNotFound
	}
	delete(f.groups, id)
	delete(f.members, id)
	for i, gid := range f.order {
		if gid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) AddPlayer(ctx context.Context, groupID, userID int64) error {
	for _, id := range f.members[groupID] {
		if id == userID {
			return nil
		}
	}
	f.members[groupID] = append(f.members[groupID], userID)
	return nil
}

func (f *fakeStore) RemovePlayer(ctx context.Context, groupID, userID int64) error {
	for i, id := range f.members[groupID] {
		if id == userID {
			f.members[groupID] = append(f.members[groupID][:i], f.members[groupID][i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	for _, id := range f.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetPlayers(ctx context.Context, groupID int64) ([]*Player, error) {
	var players []*Player
	for _, id := range f.members[groupID] {
		players = append(players, player(id))
	}
	return players, nil
}

func groupPayload(master int64) *CreateGroupRequest {
	return &CreateGroupRequest{
		Name:        "test",
		Description: "test",
		Schedule:    "test",
		Location:    "test",
		Chronic:     "test",
		Master:      master,
	}
}

func TestCreateAttachesMaster(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(7))
	require.NoError(t, err)

	assert.Equal(t, int64(7), g.Master)
	require.Len(t, g.Players, 1)
	assert.Equal(t, int64(7), g.Players[0].ID)
}

func TestListNoFilter(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), groupPayload(2))
	require.NoError(t, err)

	groups, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.NotNil(t, groups[0].MasterUser)
}

func TestListByTerm(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	req := groupPayload(1)
	req.Name = "test"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req = groupPayload(1)
	req.Name = "dois"
	req.Description = "dois"
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	groups, err := svc.List(context.Background(), Filter{Term: "es"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test", groups[0].Name)
}

func TestListByTermMatchesDescription(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	req := groupPayload(1)
	req.Name = "dois"
	req.Description = "WEEKLY session"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	groups, err := svc.List(context.Background(), Filter{Term: "weekly"})
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestListByMember(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g1, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), groupPayload(2))
	require.NoError(t, err)

	groups, err := svc.List(context.Background(), Filter{MemberID: 1})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, g1.ID, groups[0].ID)
}

func TestListByMemberAndTerm(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	req := groupPayload(1)
	req.Name = "test"
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req = groupPayload(1)
	req.Name = "dois"
	req.Description = "dois"
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	req = groupPayload(2)
	req.Name = "testing other"
	_, err = svc.Create(context.Background(), req)
	require.NoError(t, err)

	groups, err := svc.List(context.Background(), Filter{MemberID: 1, Term: "es"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test", groups[0].Name)
}

func TestUpdate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)

	name := "new name"
	updated, err := svc.Update(context.Background(), g.ID, &UpdateGroupRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, "test", updated.Description, "unset fields keep their value")
}

func TestUpdateNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Update(context.Background(), 99, &UpdateGroupRequest{})
	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDeleteCascades(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)
	require.NoError(t, store.AddPlayer(context.Background(), g.ID, 2))

	require.NoError(t, svc.Delete(context.Background(), g.ID))

	_, err = svc.GetByID(context.Background(), g.ID)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.Empty(t, store.members[g.ID])
}

func TestDeleteNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrGroupNotFound)
}

func TestRemovePlayer(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)
	require.NoError(t, store.AddPlayer(context.Background(), g.ID, 2))

	require.NoError(t, svc.RemovePlayer(context.Background(), g.ID, 2))

	isMember, err := store.IsPlayer(context.Background(), g.ID, 2)
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestRemovePlayerMaster(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)

	err = svc.RemovePlayer(context.Background(), g.ID, 1)
	assert.ErrorIs(t, err, ErrCannotRemoveMaster)

	isMember, err := store.IsPlayer(context.Background(), g.ID, 1)
	require.NoError(t, err)
	assert.True(t, isMember, "master stays a member")
}

func TestRemovePlayerNonMember(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	g, err := svc.Create(context.Background(), groupPayload(1))
	require.NoError(t, err)

	assert.NoError(t, svc.RemovePlayer(context.Background(), g.ID, 42), "removing a non-member is a no-op")
	require.Len(t, store.members[g.ID], 1)
}

func TestRemovePlayerGroupNotFound(t *testing.T) {
	svc := NewService(newFakeStore())

	assert.ErrorIs(t, svc.RemovePlayer(context.Background(), 99, 1), ErrGroupNotFound)
}
