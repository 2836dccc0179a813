package middleware

import (
	"errors"
	"testing"

	"github.com/humoyunmirzo-code/tgbot/internal/service"
	"github.com/humoyunmirzo-code/tgbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	sender *tele.User
	sent   []interface{}
}

func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Callback() *tele.Callback { return nil }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func TestRequireSender(t *testing.T) {
	tests := []struct {
		name         string
		sender       *tele.User
		expectCalled bool
	}{
		{name: "with sender", sender: &tele.User{ID: 1}, expectCalled: true},
		{name: "without sender", sender: nil, expectCalled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}

			err := RequireSender(testutil.NewTestLogger())(next)(&fakeContext{sender: tt.sender})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectCalled, called)
		})
	}
}

func TestEnsureUser(t *testing.T) {
	tests := []struct {
		name         string
		repoErr      error
		expectCalled bool
		expectSent   int
	}{
		{name: "user ensured", expectCalled: true},
		{name: "repository error", repoErr: errors.New("db down"), expectCalled: false, expectSent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockUserRepository)
			repo.On("EnsureUserExists", mock.Anything, int64(7)).Return(tt.repoErr)

			called := false
			next := func(tele.Context) error {
				called = true
				return nil
			}
			c := &fakeContext{sender: &tele.User{ID: 7}}

			err := EnsureUser(service.NewUserService(repo), testutil.NewTestLogger())(next)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectCalled, called)
			assert.Len(t, c.sent, tt.expectSent)
			repo.AssertExpectations(t)
		})
	}
}
