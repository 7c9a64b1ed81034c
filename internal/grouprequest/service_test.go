package grouprequest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmaestri/roleplay/internal/group"
)

type fakeStore struct {
	requests map[int64]*GroupRequest
	nextID   int64
	groups   *fakeGroups
}

func newFakeStore(groups *fakeGroups) *fakeStore {
	return &fakeStore{requests: make(map[int64]*GroupRequest), groups: groups}
}

func (f *fakeStore) Create(ctx context.Context, groupID, userID int64) (*GroupRequest, error) {
	for _, r := range f.requests {
		if r.GroupID == groupID && r.UserID == userID {
			return nil, ErrDuplicateRequest
		}
	}
	f.nextID++
	r := &GroupRequest{ID: f.nextID, GroupID: groupID, UserID: userID, Status: StatusPending}
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeStore) Find(ctx context.Context, groupID, userID int64) (*GroupRequest, error) {
	for _, r := range f.requests {
		if r.GroupID == groupID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListPendingByMaster(ctx context.Context, groupID, masterID int64) ([]*GroupRequest, error) {
	var out []*GroupRequest
	for _, r := range f.requests {
		g := f.groups.byID[r.GroupID]
		if r.GroupID != groupID || r.Status != StatusPending || g == nil || g.Master != masterID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) Accept(ctx context.Context, groupID, requestID int64) (*GroupRequest, error) {
	r, ok := f.requests[requestID]
	if !ok || r.GroupID != groupID || r.Status != StatusPending {
		return nil, ErrRequestNotFound
	}
	r.Status = StatusAccepted
	f.groups.members[groupID] = append(f.groups.members[groupID], r.UserID)
	return r, nil
}

func (f *fakeStore) Delete(ctx context.Context, groupID, requestID int64) error {
	r, ok := f.requests[requestID]
	if !ok || r.GroupID != groupID {
		return ErrRequestNotFound
	}
	delete(f.requests, requestID)
	return nil
}

type fakeGroups struct {
	byID    map[int64]*group.Group
	members map[int64][]int64
}

func newFakeGroups() *fakeGroups {
	return &fakeGroups{
		byID:    make(map[int64]*group.Group),
		members: make(map[int64][]int64),
	}
}

func (f *fakeGroups) GetByID(ctx context.Context, id int64) (*group.Group, error) {
	return f.byID[id], nil
}

func (f *fakeGroups) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	for _, id := range f.members[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroups) add(id, master int64) {
	f.byID[id] = &group.Group{ID: id, Name: "test", Master: master}
	f.members[id] = append(f.members[id], master)
}

func newTestService() (*Service, *fakeStore, *fakeGroups) {
	groups := newFakeGroups()
	store := newFakeStore(groups)
	return NewService(store, groups), store, groups
}

func TestCreateRequest(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, int64(1), r.GroupID)
	assert.Equal(t, int64(2), r.UserID)
}

func TestCreateRequestDuplicate(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	_, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestCreateRequestAcceptedStillDuplicate(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), 1, r.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrDuplicateRequest, "a live ACCEPTED row still conflicts")
}

func TestCreateRequestAlreadyMember(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	_, err := svc.Create(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrAlreadyMember, "master is a member without any request")
}

func TestCreateRequestGroupNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 99, 2)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestListForMaster(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)
	groups.add(2, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, 2)
	require.NoError(t, err)

	list, err := svc.ListForMaster(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)
}

func TestListForMasterMismatch(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	_, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	list, err := svc.ListForMaster(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.Empty(t, list, "wrong master sees nothing, not an error")
}

func TestListForMasterExcludesAccepted(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)
	_, err = svc.Accept(context.Background(), 1, r.ID)
	require.NoError(t, err)

	list, err := svc.ListForMaster(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccept(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background(), 1, r.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, accepted.Status)
	member, err := groups.IsPlayer(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, member, "accepting creates the membership")
}

func TestAcceptTwice(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), 1, r.ID)
	require.NoError(t, err)

	_, err = svc.Accept(context.Background(), 1, r.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound, "no PENDING row left to claim")
}

func TestAcceptUnknownRequest(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	_, err := svc.Accept(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestAcceptUnknownGroup(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Accept(context.Background(), 99, 1)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestReject(t *testing.T) {
	svc, store, groups := newTestService()
	groups.add(1, 10)

	r, err := svc.Create(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), 1, r.ID))

	assert.NotContains(t, store.requests, r.ID)

	// a rejected user can request again
	_, err = svc.Create(context.Background(), 1, 2)
	assert.NoError(t, err)
}

func TestRejectUnknownRequest(t *testing.T) {
	svc, _, groups := newTestService()
	groups.add(1, 10)

	err := svc.Reject(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestRejectUnknownGroup(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Reject(context.Background(), 99, 1)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}
