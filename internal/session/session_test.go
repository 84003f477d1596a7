package session_test

import (
	"testing"

	"github.com/arikahn/lsh/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestNewSession_StartsEmpty(t *testing.T) {
	s := session.NewSession()
	assert.Nil(t, s.History())
	assert.Equal(t, 0, s.LastStatus)
}

func TestSession_HistoryNilGetter(t *testing.T) {
	s := &session.Session{}
	assert.Nil(t, s.History())
}

func TestSession_HistoryWiredGetter(t *testing.T) {
	s := session.NewSession()
	s.HistoryGetter = func() []string { return []string{"a", "b"} }
	assert.Equal(t, []string{"a", "b"}, s.History())
}
