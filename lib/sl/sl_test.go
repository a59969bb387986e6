package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "<nil>", Err(nil).Value.String())
}

func TestSecret(t *testing.T) {
	assert.Equal(t, "?", Secret("token", "").Value.String())
	assert.Equal(t, "***", Secret("token", "abc").Value.String())
	assert.Equal(t, "abcde***", Secret("token", "abcdefgh").Value.String())
	assert.Equal(t, "blåbæ***", Secret("token", "blåbærsyltetøy").Value.String())
}

func TestDocument(t *testing.T) {
	attr := Document("quote", 42)
	assert.Equal(t, "doc", attr.Key)
	group := attr.Value.Group()
	assert.Len(t, group, 2)
	assert.Equal(t, "quote", group[0].Value.String())
	assert.Equal(t, int64(42), group[1].Value.Int64())
}
