package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/gearstore/pkg/errors"
)

// fakeRepo 内存用户仓储
type fakeRepo struct {
	byEmail map[string]*User
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*User), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrEmailDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	f.byEmail[u.Email] = u
	return nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo())

	t.Run("注册成功", func(t *testing.T) {
		u, err := svc.Register(context.Background(), "buyer@example.com", "passw0rd1", "玩家一号")
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		// 密码已加密且能通过校验
		assert.NotEqual(t, "passw0rd1", u.Password)
		assert.NoError(t, svc.ValidatePassword(u.Password, "passw0rd1"))
	})

	t.Run("邮箱格式非法", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "not-an-email", "passw0rd1", "玩家")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("密码强度不足", func(t *testing.T) {
		cases := []string{"short1", "allletters", "12345678"}
		for _, pwd := range cases {
			_, err := svc.Register(context.Background(), "weak@example.com", pwd, "玩家")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "password=%s", pwd)
		}
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "dup@example.com", "passw0rd1", "玩家")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "dup@example.com", "passw0rd1", "玩家")
		assert.ErrorIs(t, err, ErrEmailDuplicate)
	})
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Register(context.Background(), "login@example.com", "passw0rd1", "玩家")
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(context.Background(), "login@example.com", "passw0rd1")
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "login@example.com", "wrongpwd1")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost@example.com", "passw0rd1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
