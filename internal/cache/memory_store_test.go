package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Put(NamespaceFileStats, "abc", []byte(`{"size":1}`), "cfg1"))

	data, ok, err := s.Get(NamespaceFileStats, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"size":1}`, string(data))

	cfg, ok, err := s.GetConfig(NamespaceFileStats, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "cfg1", cfg)
}

func TestMemoryStoreMissReturnsNotOK(t *testing.T) {
	s := NewMemoryStore()
	_, ok, err := s.Get(NamespaceMetadata, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorePathHash(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetPathHash("/a/b.jpg", "deadbeef"))

	hash, ok, err := s.PathHash("/a/b.jpg")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "deadbeef", hash)

	_, ok, err = s.PathHash("/unknown")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyLockSerializesSameKey(t *testing.T) {
	kl := NewKeyLock(4)
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("same-key")
			defer kl.Unlock("same-key")
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}
