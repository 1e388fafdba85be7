package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pius706975/poolseek-be/internal/store"
	"github.com/pius706975/poolseek-be/types"
)

// memUserRepo is an in-memory UserRepository for tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]types.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = uuid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return user, nil
}

// memSessionRepo is an in-memory SessionRepository keyed by (user, device).
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]types.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]types.Session)}
}

func sessionKey(userID, deviceID string) string {
	return userID + "|" + deviceID
}

func (r *memSessionRepo) GetByDevice(_ context.Context, userID, deviceID string) (types.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionKey(userID, deviceID)]
	if !ok {
		return types.Session{}, store.ErrNotFound
	}
	return session, nil
}

func (r *memSessionRepo) Upsert(_ context.Context, session types.Session) (types.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(session.UserID, session.DeviceID)
	now := time.Now()
	if existing, ok := r.sessions[key]; ok {
		session.ID = existing.ID
		session.CreatedAt = existing.CreatedAt
	} else {
		session.ID = uuid.New().String()
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	r.sessions[key] = session
	return session, nil
}

func (r *memSessionRepo) DeleteByDevice(_ context.Context, userID, deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := sessionKey(userID, deviceID)
	if _, ok := r.sessions[key]; !ok {
		return store.ErrNotFound
	}
	delete(r.sessions, key)
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// memRoleRepo is an in-memory RoleRepository for tests.
type memRoleRepo struct {
	mu     sync.Mutex
	roles  map[int]types.Role
	nextID int
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[int]types.Role), nextID: 1}
}

func (r *memRoleRepo) Create(_ context.Context, role types.Role) (types.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.RoleName == role.RoleName {
			return types.Role{}, store.ErrDuplicate
		}
	}
	role.ID = r.nextID
	r.nextID++
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now
	r.roles[role.ID] = role
	return role, nil
}

func (r *memRoleRepo) List(_ context.Context) ([]types.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roles := make([]types.Role, 0, len(r.roles))
	for id := 1; id < r.nextID; id++ {
		if role, ok := r.roles[id]; ok {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (r *memRoleRepo) GetByID(_ context.Context, id int) (types.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return types.Role{}, store.ErrNotFound
	}
	return role, nil
}

func (r *memRoleRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

// recordingNotifier captures dispatched emails; sends are signalled on a
// channel so tests can wait for the detached goroutine.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []sentEmail
	fail  bool
	calls chan struct{}
}

type sentEmail struct {
	recipient string
	code      string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{calls: make(chan struct{}, 16)}
}

func (n *recordingNotifier) SendOTPEmail(_ context.Context, recipient, code string) error {
	n.mu.Lock()
	n.sent = append(n.sent, sentEmail{recipient: recipient, code: code})
	n.mu.Unlock()
	n.calls <- struct{}{}
	if n.fail {
		return fmt.Errorf("smtp unavailable")
	}
	return nil
}

func (n *recordingNotifier) waitForSend(timeout time.Duration) bool {
	select {
	case <-n.calls:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (n *recordingNotifier) last() (sentEmail, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentEmail{}, false
	}
	return n.sent[len(n.sent)-1], true
}

// plainHasher is a transparent PasswordHasher for tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}
