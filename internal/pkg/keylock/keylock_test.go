package keylock

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDo_SerialisesSameKey(t *testing.T) {
	k := New()

	const workers = 20
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = k.Do("project-a", func() error {
				// Non-atomic increment; only safe if Do serialises.
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestDo_DifferentKeysDoNotBlock(t *testing.T) {
	k := New()

	k.Lock("project-a")
	defer k.Unlock("project-a")

	done := make(chan struct{})
	go func() {
		_ = k.Do("project-b", func() error { return nil })
		close(done)
	}()

	<-done
}

func TestDo_PropagatesError(t *testing.T) {
	k := New()

	want := errors.New("boom")
	err := k.Do("project-a", func() error { return want })

	assert.ErrorIs(t, err, want)
}

func TestDo_ReleasesLockAfterError(t *testing.T) {
	k := New()

	_ = k.Do("project-a", func() error { return errors.New("boom") })

	// Would deadlock if the first Do leaked the lock.
	err := k.Do("project-a", func() error { return nil })
	assert.NoError(t, err)
}

func TestUnlock_UnheldKeyPanics(t *testing.T) {
	k := New()

	assert.Panics(t, func() { k.Unlock("never-locked") })
}
