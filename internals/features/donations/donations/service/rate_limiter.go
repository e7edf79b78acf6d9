package service

import (
	"sync"
	"time"
)

// DonationLimiter = fixed-window counter per identifier (email anonim / IP).
// Proteksi best-effort per proses; tiap instance punya counter sendiri.
// Limiter fiber di middleware tidak bisa dipakai di sini karena key-nya
// butuh field dari body request.
type DonationLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*limiterEntry

	now func() time.Time // injektabel untuk test
}

type limiterEntry struct {
	count   int
	resetAt time.Time
}

func NewDonationLimiter(max int, window time.Duration) *DonationLimiter {
	return &DonationLimiter{
		max:     max,
		window:  window,
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

// Allow mencatat satu percobaan untuk identifier dan mengembalikan
// (diizinkan, sisa kuota, tunggu-berapa-lama saat ditolak).
func (l *DonationLimiter) Allow(identifier string) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		// Window baru: counter mulai dari 1
		l.entries[identifier] = &limiterEntry{count: 1, resetAt: now.Add(l.window)}
		l.pruneLocked(now)
		return true, l.max - 1, 0
	}

	if e.count >= l.max {
		return false, 0, e.resetAt.Sub(now)
	}

	e.count++
	return true, l.max - e.count, 0
}

// pruneLocked buang entry kadaluarsa biar map tidak tumbuh terus
func (l *DonationLimiter) pruneLocked(now time.Time) {
	for id, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, id)
		}
	}
}
