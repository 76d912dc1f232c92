package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImageLink(t *testing.T) {
	img := Image{Bucket: "media", Region: "us-east-1", UUID: "abc-123", Ext: "png"}
	assert.Equal(t, "https://media.s3.amazonaws.com/abc-123.png", img.Link())
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	session := Session{Token: "tok", UserID: "user", ExpiresAt: now}

	assert.False(t, session.Expired(now.Add(-time.Second)))
	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(time.Second)))
}
