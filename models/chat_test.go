package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIDOrderIndependent(t *testing.T) {
	assert.Equal(t, ChatID("user-a", "user-b"), ChatID("user-b", "user-a"))
	assert.Equal(t, "user-a:user-b", ChatID("user-b", "user-a"))
}

func TestHasParticipant(t *testing.T) {
	chat := Chat{Participants: []string{"user-a", "user-b"}}
	assert.True(t, chat.HasParticipant("user-a"))
	assert.True(t, chat.HasParticipant("user-b"))
	assert.False(t, chat.HasParticipant("user-c"))
}
