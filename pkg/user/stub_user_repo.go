package user

import (
	"context"
)

type StubRepo struct {
	nextId int
	users  map[int]User
}

func NewStubUserRepo() *StubRepo {
	return &StubRepo{users: map[int]User{}}
}

func (s *StubRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.users[user.Id] = user
	return user.Id, nil
}

func (s *StubRepo) GetUser(ctx context.Context, id int) (User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return User{}, ErrUserNotFound
}

func (s *StubRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.users {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return false, nil
		}
	}
	return true, nil
}
