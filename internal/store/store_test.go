package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanadrill/internal/model"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "kanadrill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	out := map[string]KV{
		"sqlite": sqlite,
		"memory": NewMemory(),
		"redis":  openMiniRedis(t, miniredis.RunT(t)),
	}
	if addr := os.Getenv("KANADRILL_TEST_REDIS_ADDR"); addr != "" {
		r, err := OpenRedis(context.Background(), addr, "", 0, fmt.Sprintf("kanadrill-test:%d:", time.Now().UnixNano()))
		require.NoError(t, err)
		t.Cleanup(func() {
			_ = r.Clear(context.Background(), ResultsKey)
			_ = r.Clear(context.Background(), "k")
			_ = r.Close()
		})
		out["redis-server"] = r
	}
	return out
}

func openMiniRedis(t *testing.T, mr *miniredis.Miniredis) *Redis {
	t.Helper()
	r, err := OpenRedis(context.Background(), mr.Addr(), "", 0, "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRedisUpdateRetriesAfterConflict(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	r := openMiniRedis(t, mr)

	calls := 0
	err := r.Update(ctx, "k", func(cur string, ok bool) (string, error) {
		calls++
		if calls == 1 {
			assert.False(t, ok)
			require.NoError(t, mr.Set("test:k", "other"))
		}
		return cur + "+", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	v, ok, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "other+", v)
}

func TestRedisUpdateGivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	r := openMiniRedis(t, mr)

	calls := 0
	err := r.Update(ctx, "k", func(cur string, _ bool) (string, error) {
		calls++
		require.NoError(t, mr.Set("test:k", fmt.Sprintf("writer-%d", calls)))
		return cur + "+", nil
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxUpdateRetries, calls)

	v, err := mr.Get("test:k")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("writer-%d", maxUpdateRetries), v)
}

func TestRedisUpdateErrorSkipsWrite(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	r := openMiniRedis(t, mr)
	require.NoError(t, r.Set(ctx, "k", "keep"))

	boom := errors.New("boom")
	err := r.Update(ctx, "k", func(string, bool) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	v, _, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
}

func TestKVSemantics(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Set(ctx, "k", "one"))
			require.NoError(t, kv.Set(ctx, "k", "two"))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "two", v)

			require.NoError(t, kv.Update(ctx, "k", func(cur string, ok bool) (string, error) {
				assert.True(t, ok)
				return cur + "+", nil
			}))
			v, _, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two+", v)

			boom := errors.New("boom")
			err = kv.Update(ctx, "k", func(string, bool) (string, error) { return "", boom })
			assert.ErrorIs(t, err, boom)
			v, _, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two+", v, "failed update must not write")

			require.NoError(t, kv.Clear(ctx, "k"))
			_, ok, err = kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func sampleRecord(id string, correct, wrong int) model.ResultRecord {
	return model.ResultRecord{
		ID:             id,
		Timestamp:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Game:           model.GameQuiz,
		Mode:           model.ModeHiragana,
		CharacterSet:   model.SetBasic,
		TotalQuestions: correct + wrong,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		Questions: []model.QuestionResult{
			{Character: "あ", Correct: true, UserAnswer: "a", CorrectAnswer: "a"},
		},
	}
}

func TestResultLogRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log := NewResultLog(kv)
			records, err := log.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)

			require.NoError(t, log.Append(ctx, sampleRecord("r1", 3, 2)))
			require.NoError(t, log.Append(ctx, sampleRecord("r2", 5, 0)))

			records, err = log.List(ctx)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, "r1", records[0].ID)
			assert.Equal(t, 5, records[0].TotalQuestions)
			assert.Equal(t, 3, records[0].CorrectAnswers)
			assert.Equal(t, 2, records[0].WrongAnswers)
			assert.True(t, records[0].Timestamp.Equal(sampleRecord("", 0, 0).Timestamp))
			assert.Equal(t, "r2", records[1].ID)

			require.NoError(t, log.Clear(ctx))
			records, err = log.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestResultLogPersistedFieldNames(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, NewResultLog(kv).Append(ctx, sampleRecord("r1", 1, 0)))
	raw, ok, err := kv.Get(ctx, ResultsKey)
	require.NoError(t, err)
	require.True(t, ok)
	for _, field := range []string{`"id"`, `"date"`, `"mode"`, `"characterSet"`, `"totalQuestions"`, `"correctAnswers"`, `"wrongAnswers"`, `"questions"`, `"userAnswer"`, `"correctAnswer"`} {
		assert.Contains(t, raw, field)
	}
}

func TestResultLogCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.Set(ctx, ResultsKey, "{not json"))
	log := NewResultLog(kv)

	_, err := log.List(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	err = log.Append(ctx, sampleRecord("r1", 1, 0))
	assert.ErrorIs(t, err, ErrCorrupt)
	raw, _, _ := kv.Get(ctx, ResultsKey)
	assert.Equal(t, "{not json", raw)
}

func TestResultLogConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			log := NewResultLog(kv)
			writers := 20
			if _, ok := kv.(*Redis); ok {
				// each lost WATCH means another writer committed, so no
				// writer can fail more often than there are other writers
				writers = maxUpdateRetries
			}
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, log.Append(ctx, sampleRecord(fmt.Sprintf("r%d", i), 1, 0)))
				}(i)
			}
			wg.Wait()
			records, err := log.List(ctx)
			require.NoError(t, err)
			assert.Len(t, records, writers)
		})
	}
}

func TestSQLiteAppendsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	first, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	logs := []*ResultLog{NewResultLog(first), NewResultLog(second)}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, logs[i%2].Append(ctx, sampleRecord(fmt.Sprintf("r%d", i), 1, 0)))
		}(i)
	}
	wg.Wait()

	records, err := logs[0].List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestSQLiteDSNUsesImmediateTransactions(t *testing.T) {
	dsn := sqliteDSN("/tmp/kana.db")
	assert.Contains(t, dsn, "_txlock=immediate")
	assert.Contains(t, dsn, "busy_timeout")
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(ctx, Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "db.sqlite")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, kv.Close())

	mr := miniredis.RunT(t)
	kv, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr(), RedisPrefix: "open:"})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
