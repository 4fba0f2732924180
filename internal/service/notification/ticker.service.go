package notification

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"transfer-storefront/internal/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	KindComment = "comment"
	KindGift    = "gift"
	KindPromo   = "promo"

	DefaultInterval  = 4 * time.Second
	DefaultTTL       = 6 * time.Second
	DefaultMaxActive = 4
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Config struct {
	Interval  time.Duration
	TTL       time.Duration
	MaxActive int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxActive <= 0 {
		c.MaxActive = DefaultMaxActive
	}
	return c
}

var (
	names    = []string{"Marie", "Jean", "Roseline", "Samuel", "Nadège", "Kervens", "Fabiola", "Wilson"}
	cities   = []string{"Port-au-Prince", "Cap-Haïtien", "Jacmel", "Les Cayes", "Miami", "Montréal", "Boston", "Santo Domingo"}
	comments = []string{"Fast and easy!", "My family got it in minutes.", "Best rates I found.", "Love the tracking page."}
	promos   = []string{"Free shipping on orders over $50", "Use WELCOME10 for 10% off", "Send $100 or more and pay no fee today"}
)

// Ticker produces the rotating social-proof notifications. At most
// MaxActive are visible; each disappears after TTL.
type Ticker struct {
	cfg Config

	mu     sync.Mutex
	rnd    *rand.Rand
	now    func() time.Time
	active []Notification
	subs   map[chan Notification]struct{}
}

type Option func(*Ticker)

func WithRand(r *rand.Rand) Option {
	return func(t *Ticker) { t.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(t *Ticker) { t.now = now }
}

func NewTicker(cfg Config, opts ...Option) *Ticker {
	t := &Ticker{
		cfg:  cfg.withDefaults(),
		rnd:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:  time.Now,
		subs: map[chan Notification]struct{}{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run emits one notification per interval until ctx is done.
func (t *Ticker) Run(ctx context.Context) {
	tick := time.NewTicker(t.cfg.Interval)
	defer tick.Stop()

	logger.Info.Printf("notification ticker started, interval %s", t.cfg.Interval)
	for {
		select {
		case <-ctx.Done():
			t.closeSubscribers()
			logger.Info.Println("notification ticker stopped")
			return
		case <-tick.C:
			t.Emit()
		}
	}
}

func (t *Ticker) pick(list []string) string {
	return list[t.rnd.IntN(len(list))]
}

// generate must be called with mu held.
func (t *Ticker) generate(now time.Time) Notification {
	n := Notification{CreatedAt: now, ExpiresAt: now.Add(t.cfg.TTL)}
	n.ID, _ = gonanoid.New(12)

	switch t.rnd.IntN(3) {
	case 0:
		n.Kind = KindComment
		n.Message = render("{name} from {city} just commented: {comment}", map[string]string{
			"name": t.pick(names), "city": t.pick(cities), "comment": t.pick(comments),
		})
	case 1:
		n.Kind = KindGift
		n.Message = render("{name} just sent a gift to {city}", map[string]string{
			"name": t.pick(names), "city": t.pick(cities),
		})
	default:
		n.Kind = KindPromo
		n.Message = render("{promo}", map[string]string{"promo": t.pick(promos)})
	}
	return n
}

func render(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// prune drops expired entries; mu must be held.
func (t *Ticker) prune(now time.Time) {
	kept := t.active[:0]
	for _, n := range t.active {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	t.active = kept
}

// Emit adds one notification, dropping the oldest beyond MaxActive, and
// fans it out to subscribers that are keeping up.
func (t *Ticker) Emit() Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.prune(now)
	n := t.generate(now)

	t.active = append([]Notification{n}, t.active...)
	if len(t.active) > t.cfg.MaxActive {
		t.active = t.active[:t.cfg.MaxActive]
	}

	for ch := range t.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return n
}

// Active returns the visible notifications at now, newest first.
func (t *Ticker) Active(now time.Time) []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune(now)
	out := make([]Notification, len(t.active))
	copy(out, t.active)
	return out
}

// Subscribe returns a channel of new notifications and a func that ends the
// subscription. The channel is closed when either runs.
func (t *Ticker) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, t.cfg.MaxActive)
	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			if _, ok := t.subs[ch]; ok {
				delete(t.subs, ch)
				close(ch)
			}
		})
	}
}

func (t *Ticker) closeSubscribers() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for ch := range t.subs {
		delete(t.subs, ch)
		close(ch)
	}
}
