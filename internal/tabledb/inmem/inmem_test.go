package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/dekarrin/tableau/internal/tabledb"
	"github.com/stretchr/testify/assert"
)

func Test_historyRepository_putAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	rec := tabledb.Record{
		Fingerprint: "fp-1",
		Canonical:   "p",
		Directive:   "SAT",
		Verdict:     "Satisfiable",
		Created:     time.Now(),
	}

	_, err := store.History().Put(ctx, rec)
	if !assert.NoError(err) {
		return
	}

	got, err := store.History().Get(ctx, "fp-1")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(rec.Canonical, got.Canonical)
	assert.Equal(rec.Verdict, got.Verdict)
}

func Test_historyRepository_getMissingIsNotFound(t *testing.T) {
	store := NewDatastore()
	defer store.Close()

	_, err := store.History().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, tabledb.ErrNotFound)
}

func Test_historyRepository_recentNewestFirst(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	base := time.Now()
	for i := 0; i < 3; i++ {
		_, err := store.History().Put(ctx, tabledb.Record{
			Fingerprint: string(rune('a' + i)),
			Canonical:   "p",
			Created:     base.Add(time.Duration(i) * time.Minute),
		})
		if !assert.NoError(err) {
			return
		}
	}

	recent, err := store.History().Recent(ctx, 2)
	if !assert.NoError(err) {
		return
	}
	if !assert.Len(recent, 2) {
		return
	}
	assert.Equal("c", recent[0].Fingerprint)
	assert.Equal("b", recent[1].Fingerprint)
}
