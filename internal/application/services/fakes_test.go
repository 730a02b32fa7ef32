package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	domain "baka-api/internal/domain/user"
	"baka-api/internal/infrastructure/mq"
)

// memRepo is an in-memory user.Repository keyed by id.
type memRepo struct {
	mu     sync.Mutex
	nextID domain.ID
	users  map[domain.ID]*domain.User
	err    error
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[domain.ID]*domain.User)}
}

func clone(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *memRepo) byToken(token string) *domain.User {
	for _, u := range r.users {
		if u.Token == token {
			return u
		}
	}
	return nil
}

func (r *memRepo) FetchUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var found *domain.User
	for _, u := range r.users {
		if u.Email == email && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, nil
	}
	return clone(found), nil
}

func (r *memRepo) FetchUserByID(_ context.Context, id domain.ID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[id]; ok {
		return clone(u), nil
	}
	return nil, nil
}

func (r *memRepo) FetchUserByToken(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if u := r.byToken(token); u != nil {
		return clone(u), nil
	}
	return nil, nil
}

func (r *memRepo) FetchAccountByToken(ctx context.Context, token string) (*domain.User, error) {
	return r.FetchUserByToken(ctx, token)
}

func (r *memRepo) FetchUsers(_ context.Context) (domain.Users, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var us domain.Users
	for _, u := range r.users {
		us = append(us, clone(u))
	}
	sort.Slice(us, func(i, j int) bool { return us[i].ID < us[j].ID })
	return us, nil
}

func (r *memRepo) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.byToken(u.Token) != nil {
		return nil, errors.New("duplicate token")
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = clone(&u)
	return clone(&u), nil
}

func (r *memRepo) DeleteUser(_ context.Context, token string, hard bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u := r.byToken(token)
	if u == nil {
		return nil, nil
	}
	if hard {
		delete(r.users, u.ID)
	} else {
		u.Deleted = true
	}
	return clone(u), nil
}

func (r *memRepo) DisableUser(_ context.Context, token string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u := r.byToken(token)
	if u == nil {
		return nil, nil
	}
	u.Disabled = true
	return clone(u), nil
}

func (r *memRepo) ResetToken(_ context.Context, token string, generate domain.TokenFunc) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u := r.byToken(token)
	if u == nil {
		return nil, nil
	}
	tok, err := generate(clone(u))
	if err != nil {
		return nil, err
	}
	u.Token = tok
	return clone(u), nil
}

type seqTokens struct {
	n   int
	err error
}

func (s *seqTokens) Generate(*domain.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.n++
	return "tok-" + string(rune('a'+s.n-1)), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *fakePublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

func newCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counters"}, []string{"result"})
}
