package dataset

import (
	"testing"
	"time"

	"datasentry/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesOneKey(t *testing.T) {
	k := NewKeyedMutex()
	id := core.ID("a")

	unlock := k.Lock(id)
	acquired := make(chan struct{})
	go func() {
		defer close(acquired)
		k.Lock(id)()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first is held")
	case <-time.After(20 * time.Millisecond):
	}

	// other keys are independent
	k.Lock(core.ID("b"))()

	unlock()
	<-acquired
	assert.Equal(t, 0, k.Size())
}
