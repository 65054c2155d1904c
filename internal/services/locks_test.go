package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/terraincognita07/nutrismart/internal/models"
)

func TestEmailLocksSerializeSameEmailOnly(t *testing.T) {
	locks := NewEmailLocks()
	unlock := locks.Lock("ana@example.com")

	acquired := make(chan struct{})
	go func() {
		release := locks.Lock("ana@example.com")
		close(acquired)
		release()
	}()

	otherDone := make(chan struct{})
	go func() {
		locks.Lock("bia@example.com")()
		close(otherDone)
	}()
	select {
	case <-otherDone:
	case <-time.After(time.Second):
		t.Fatal("a different email must not wait for ana's lock")
	}

	select {
	case <-acquired:
		t.Fatal("second Lock() for the same email returned while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Lock() did not proceed after unlock")
	}
}

type overlapCountingUserRepo struct {
	*stubUserRepo
	mu         sync.Mutex
	inFlight   atomic.Int32
	maxOverlap atomic.Int32
}

func (repo *overlapCountingUserRepo) UpdateProfile(email string, weightKg float64, heightM float64, diet models.Diet, bmi float64) (bool, error) {
	current := repo.inFlight.Add(1)
	defer repo.inFlight.Add(-1)
	for {
		seen := repo.maxOverlap.Load()
		if current <= seen || repo.maxOverlap.CompareAndSwap(seen, current) {
			break
		}
	}
	time.Sleep(time.Millisecond)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.stubUserRepo.UpdateProfile(email, weightKg, heightM, diet, bmi)
}

func TestUserDirectoryUpdateProfileSerializesSameEmail(t *testing.T) {
	policy, err := NewCredentialPolicy(CredentialModePlain)
	if err != nil {
		t.Fatalf("NewCredentialPolicy(): %v", err)
	}
	repo := &overlapCountingUserRepo{stubUserRepo: newStubUserRepo()}
	service := NewUserDirectoryService(repo, policy, NewEmailLocks(), nil, nil)
	if _, err := service.Register(validRegistrationInput()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(weight float64) {
			defer wg.Done()
			if _, err := service.UpdateProfile("ana@example.com", weight, 1.75, models.DietBulking); err != nil {
				t.Errorf("UpdateProfile(%v) error: %v", weight, err)
			}
		}(float64(60 + i))
	}
	wg.Wait()

	if got := repo.maxOverlap.Load(); got != 1 {
		t.Fatalf("max concurrent profile writes for one email = %d, want 1", got)
	}
}
