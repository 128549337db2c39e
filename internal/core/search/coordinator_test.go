package search

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-vanity/internal/core/integrity"
	"github.com/dep2p/go-vanity/internal/core/matcher"
	"github.com/dep2p/go-vanity/pkg/lib/crypto"
	"github.com/dep2p/go-vanity/tests/mocks"
	"github.com/dep2p/go-vanity/tests/testutil"
)

// ============================================================================
//                              测试辅助
// ============================================================================

// mockGuard 函数式注入的 Guard
type mockGuard struct {
	CheckEntropyFunc  func() error
	VerifyKeypairFunc func(kp *crypto.Keypair) error
}

func (g *mockGuard) CheckEntropy() error {
	if g.CheckEntropyFunc != nil {
		return g.CheckEntropyFunc()
	}
	return nil
}

func (g *mockGuard) VerifyKeypair(kp *crypto.Keypair) error {
	if g.VerifyKeypairFunc != nil {
		return g.VerifyKeypairFunc(kp)
	}
	return nil
}

// countingRecorder 记录指标调用
type countingRecorder struct {
	started       atomic.Int64
	attempts      atomic.Uint64
	matches       atomic.Int64
	verifyFailure atomic.Int64
	finished      atomic.Int32
}

func (r *countingRecorder) SearchStarted(int)         { r.started.Add(1) }
func (r *countingRecorder) AttemptsObserved(n uint64) { r.attempts.Add(n) }
func (r *countingRecorder) MatchFound()               { r.matches.Add(1) }
func (r *countingRecorder) VerificationFailed()       { r.verifyFailure.Add(1) }
func (r *countingRecorder) SearchFinished(s State, _ time.Duration) {
	r.finished.Store(int32(s))
}

func compile(t *testing.T, prefix, suffix string, ci bool) *matcher.Matcher {
	t.Helper()
	p, err := matcher.New(prefix, suffix, ci)
	require.NoError(t, err)
	return matcher.Compile(p)
}

// scriptedAddresses 第 hitAt 次派生返回命中地址，其余返回不命中地址
func scriptedAddresses(hitAt int64) func(ed25519.PublicKey) string {
	var n atomic.Int64
	return func(ed25519.PublicKey) string {
		if n.Add(1) == hitAt {
			return "Zhit" + strings.Repeat("1", 40)
		}
		return strings.Repeat("1", 44)
	}
}

// ============================================================================
//                              测试用例
// ============================================================================

func TestRun_FindsMatch(t *testing.T) {
	for _, threads := range []int{1, 2, 4} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			m := compile(t, "A", "", false)
			cfg := Config{Threads: threads, VerifyKeypairs: true, ProgressInterval: 1000}

			c, err := New(cfg, crypto.NewEd25519Provider(), m)
			require.NoError(t, err)

			var res *Result
			testutil.WithinTimeout(t, 30*time.Second, func() {
				res, err = c.Run(context.Background(), nil)
			})
			require.NoError(t, err)
			defer res.Destroy()

			assert.True(t, strings.HasPrefix(res.Address, "A"))
			assert.True(t, m.Match(res.Address))
			assert.Equal(t, res.Address, crypto.Address(res.Keypair.PublicKey()))
			assert.True(t, res.Keypair.Consistent())
			assert.GreaterOrEqual(t, res.Attempts, uint64(1))
			assert.Equal(t, StateFound, c.State())
			assert.Equal(t, c.RunID(), res.RunID)
		})
	}
}

func TestRun_PrefixAB(t *testing.T) {
	m := compile(t, "AB", "", false)
	c, err := New(Config{Threads: 4, VerifyKeypairs: true, ProgressInterval: 10_000}, crypto.NewEd25519Provider(), m)
	require.NoError(t, err)

	var res *Result
	testutil.WithinTimeout(t, 60*time.Second, func() {
		res, err = c.Run(context.Background(), nil)
	})
	require.NoError(t, err)
	defer res.Destroy()

	assert.True(t, strings.HasPrefix(res.Address, "AB"))
	assert.GreaterOrEqual(t, res.Attempts, uint64(1))
	assert.Greater(t, res.Rate(), 0.0)
}

func TestRun_PreCancelled(t *testing.T) {
	for _, threads := range []int{1, 2, 8} {
		m := compile(t, "zzzzzzzz", "", false)
		p := mocks.NewMockProvider()
		c, err := New(Config{Threads: threads, ProgressInterval: 100}, p, m, WithGuard(&mockGuard{}))
		require.NoError(t, err)

		c.Cancel()
		var res *Result
		testutil.WithinTimeout(t, 5*time.Second, func() {
			res, err = c.Run(context.Background(), nil)
		})

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrCancelled)
		assert.True(t, IsCancelled(err))
		assert.Zero(t, p.GenerateCalls.Load())
		assert.Equal(t, StateCancelled, c.State())
	}
}

func TestRun_ContextAlreadyDone(t *testing.T) {
	for i := 0; i < 50; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		m := compile(t, "Z", "", false)
		p := mocks.NewMockProvider()
		p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "Zalways" }
		rec := &countingRecorder{}
		c, err := New(Config{Threads: 4, ProgressInterval: 100}, p, m, WithRecorder(rec))
		require.NoError(t, err)

		var res *Result
		testutil.WithinTimeout(t, 5*time.Second, func() {
			res, err = c.Run(ctx, nil)
		})
		require.Nil(t, res)
		require.ErrorIs(t, err, ErrCancelled)
		require.Zero(t, p.GenerateCalls.Load())
		require.Equal(t, StateCancelled, c.State())
		require.Zero(t, rec.matches.Load())
		require.Equal(t, int32(StateCancelled), rec.finished.Load())
	}
}

func TestRun_CancelDuringSearch(t *testing.T) {
	m := compile(t, "zzzzzzzz", "zzzzzzzz", false)
	c, err := New(Config{Threads: 4, ProgressInterval: 100}, crypto.NewEd25519Provider(), m)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var res *Result
	testutil.WithinTimeout(t, 10*time.Second, func() {
		res, err = c.Run(ctx, nil)
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Greater(t, c.Attempts(), uint64(0))
}

func TestRun_CancelFromOtherGoroutine(t *testing.T) {
	m := compile(t, "zzzzzzzz", "zzzzzzzz", false)
	c, err := New(Config{Threads: 2, ProgressInterval: 100}, crypto.NewEd25519Provider(), m)
	require.NoError(t, err)

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := c.Run(context.Background(), nil)
		done <- outcome{res, err}
	}()

	testutil.Eventually(t, 10*time.Second, func() bool {
		return c.Attempts() >= 1000
	}, "workers should make progress")
	assert.Equal(t, StateRunning, c.State())

	c.Cancel()
	testutil.WithinTimeout(t, 10*time.Second, func() {
		out := <-done
		assert.Nil(t, out.res)
		assert.ErrorIs(t, out.err, ErrCancelled)
	})
	assert.Equal(t, StateCancelled, c.State())
}

func TestRun_AlreadyRun(t *testing.T) {
	m := compile(t, "1", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "1abc" }

	c, err := New(Config{Threads: 1, ProgressInterval: 10}, p, m, WithGuard(&mockGuard{}))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	res.Destroy()

	_, err = c.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestNew_InvalidConfig(t *testing.T) {
	m := compile(t, "A", "", false)
	p := crypto.NewEd25519Provider()

	tests := []struct {
		name string
		cfg  Config
		p    crypto.Provider
		m    *matcher.Matcher
	}{
		{"zero threads", Config{Threads: 0, ProgressInterval: 1}, p, m},
		{"negative threads", Config{Threads: -1, ProgressInterval: 1}, p, m},
		{"zero interval", Config{Threads: 1, ProgressInterval: 0}, p, m},
		{"nil provider", Config{Threads: 1, ProgressInterval: 1}, nil, m},
		{"nil matcher", Config{Threads: 1, ProgressInterval: 1}, p, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, tt.p, tt.m)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestRun_EntropyFailureAborts(t *testing.T) {
	m := compile(t, "A", "", false)
	p := mocks.NewMockProvider()
	g := &mockGuard{CheckEntropyFunc: func() error { return integrity.ErrRngQuality }}

	c, err := New(Config{Threads: 4, ProgressInterval: 10}, p, m, WithGuard(g))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, integrity.ErrRngQuality)
	assert.Zero(t, p.GenerateCalls.Load())
	assert.Equal(t, StateFailed, c.State())
}

func TestRun_EntropyCheckWithRealGuard(t *testing.T) {
	seed := testutil.KnownKeypair(t).Seed()
	p := mocks.NewMockProvider()
	p.GenerateFunc = mocks.FixedSeedGenerator(append([]byte(nil), seed...))

	c, err := New(Config{Threads: 1, ProgressInterval: 10}, p, compile(t, "A", "", false))
	require.NoError(t, err)

	_, err = c.Run(context.Background(), nil)
	assert.ErrorIs(t, err, integrity.ErrRngQuality)
}

func TestRun_VerificationFailureAbsorbed(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "Zalways" }

	var verifyCalls atomic.Int64
	g := &mockGuard{VerifyKeypairFunc: func(*crypto.Keypair) error {
		if verifyCalls.Add(1) <= 3 {
			return integrity.ErrVerification
		}
		return nil
	}}
	rec := &countingRecorder{}

	c, err := New(Config{Threads: 1, VerifyKeypairs: true, ProgressInterval: 100}, p, m,
		WithGuard(g), WithRecorder(rec))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	defer res.Destroy()

	assert.EqualValues(t, 4, res.Attempts)
	assert.EqualValues(t, 3, rec.verifyFailure.Load())
	assert.EqualValues(t, 4, rec.matches.Load())
	assert.EqualValues(t, 4, rec.attempts.Load())
	assert.Equal(t, int32(StateFound), rec.finished.Load())
}

func TestRun_VerificationSkippedWhenDisabled(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "Zalways" }
	g := &mockGuard{VerifyKeypairFunc: func(*crypto.Keypair) error {
		t.Error("verification must not run")
		return nil
	}}

	c, err := New(Config{Threads: 1, VerifyKeypairs: false, ProgressInterval: 100}, p, m, WithGuard(g))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	res.Destroy()
}

func TestRun_Progress(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = scriptedAddresses(100)

	var mu sync.Mutex
	var reported []uint64
	progress := func(attempts uint64, elapsed time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, attempts)
		assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	}

	c, err := New(Config{Threads: 1, ProgressInterval: 10}, p, m, WithGuard(&mockGuard{}))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), progress)
	require.NoError(t, err)
	defer res.Destroy()

	assert.EqualValues(t, 100, res.Attempts)
	assert.Equal(t, []uint64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, reported)
}

func TestRun_ProgressConcurrent(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = scriptedAddresses(2000)
	rec := &countingRecorder{}

	var calls atomic.Int64
	c, err := New(Config{Threads: 4, ProgressInterval: 50}, p, m,
		WithGuard(&mockGuard{}), WithRecorder(rec))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), func(uint64, time.Duration) { calls.Add(1) })
	require.NoError(t, err)
	defer res.Destroy()

	assert.Greater(t, calls.Load(), int64(0))
	assert.LessOrEqual(t, calls.Load(), int64(res.Attempts/50))
	// 指标中的尝试次数与计数器一致
	assert.Equal(t, res.Attempts, rec.attempts.Load())
}

func TestRun_CommittedResultBeatsCancel(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "Zalways" }

	var c *Coordinator
	g := &mockGuard{VerifyKeypairFunc: func(*crypto.Keypair) error {
		// 命中后、提交前到达的取消
		c.Cancel()
		return nil
	}}

	var err error
	c, err = New(Config{Threads: 1, VerifyKeypairs: true, ProgressInterval: 10}, p, m, WithGuard(g))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	defer res.Destroy()
	assert.Equal(t, StateFound, c.State())
}

func TestRun_LosersDestroyed(t *testing.T) {
	m := compile(t, "Z", "", false)
	p := mocks.NewMockProvider()
	p.DeriveAddressFunc = func(ed25519.PublicKey) string { return "Zalways" }

	var mu sync.Mutex
	var generated []*crypto.Keypair
	p.GenerateFunc = func() (*crypto.Keypair, error) {
		kp, err := p.Real.Generate()
		if err == nil {
			mu.Lock()
			generated = append(generated, kp)
			mu.Unlock()
		}
		return kp, err
	}

	c, err := New(Config{Threads: 8, ProgressInterval: 10}, p, m, WithGuard(&mockGuard{}))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	for _, kp := range generated {
		if kp == res.Keypair {
			assert.False(t, kp.Destroyed())
			continue
		}
		assert.True(t, kp.Destroyed(), "losing candidate must be zeroized")
	}

	res.Destroy()
	assert.True(t, res.Keypair.Destroyed())
}

func TestRun_GenerateFailure(t *testing.T) {
	m := compile(t, "zzzz", "", false)
	p := mocks.NewMockProvider()
	p.GenerateFunc = func() (*crypto.Keypair, error) { return nil, crypto.ErrRandomSource }

	c, err := New(Config{Threads: 2, ProgressInterval: 10}, p, m, WithGuard(&mockGuard{}))
	require.NoError(t, err)

	res, err := c.Run(context.Background(), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, crypto.ErrRandomSource)
	assert.False(t, errors.Is(err, ErrCancelled))
	assert.Equal(t, StateFailed, c.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "found", StateFound.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "failed", StateFailed.String())
}
