package application

import (
	"context"
	"testing"
	"time"

	"gachabot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfirmationFixture() (*memStore, *manualClock, *ConfirmationWorkflow) {
	store := newMemStore()
	seedItems(store, testGuild,
		entities.NewItem(testGuild, "Sword", false),
		entities.NewItem(testGuild, "Shield", false),
	)
	st := store.state(testGuild)
	st.collections[testUser] = map[string]int{"Sword": 2, "Shield": 1}
	st.pity[testUser] = entities.PityState{GuildID: testGuild, DiscordID: testUser, Counter: 40}
	st.tokens[testUser] = entities.TokenBalance{entities.RarityR: 3, entities.RaritySR: 1}

	clock := newManualClock()
	workflow := NewConfirmationWorkflow(store, NewConfirmationGate(clock, 30*time.Second))
	return store, clock, workflow
}

func TestConfirmationWorkflow_DeleteItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, workflow := newConfirmationFixture()

	item, pending, err := workflow.RequestDeleteItem(ctx, testGuild, testUser, "swo")
	require.NoError(t, err)
	assert.Equal(t, "Sword", item.Name)
	assert.Equal(t, "Sword", pending.Argument)
	assert.Len(t, store.state(testGuild).items, 2, "nothing is deleted before confirm")

	outcome, err := workflow.Confirm(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Equal(t, KindDeleteItem, outcome.Kind)
	assert.Equal(t, "Sword", outcome.ItemName)

	st := store.state(testGuild)
	require.Len(t, st.items, 1)
	assert.Equal(t, "Shield", st.items[0].Name)
	_, owned := st.collections[testUser]["Sword"]
	assert.False(t, owned, "copies of the deleted item are removed")
	assert.Equal(t, 1, st.collections[testUser]["Shield"])
}

func TestConfirmationWorkflow_DeleteItemRejectsBadQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, _, workflow := newConfirmationFixture()

	_, _, err := workflow.RequestDeleteItem(ctx, testGuild, testUser, "Bow")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, _, err = workflow.RequestDeleteItem(ctx, testGuild, testUser, "S")
	assert.ErrorIs(t, err, entities.ErrAmbiguousReference)

	assert.Equal(t, 0, workflow.Gate().PendingCount())
}

func TestConfirmationWorkflow_ResetItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, workflow := newConfirmationFixture()

	workflow.RequestResetItems(testGuild, testUser)
	outcome, err := workflow.Confirm(ctx, testGuild, testUser)
	require.NoError(t, err)
	require.NotNil(t, outcome.ItemsReset)
	assert.Equal(t, int64(2), outcome.ItemsReset.Items)
	assert.Equal(t, int64(2), outcome.ItemsReset.Collections)
	assert.Equal(t, int64(1), outcome.ItemsReset.PityRows)

	st := store.state(testGuild)
	assert.Empty(t, st.items)
	assert.Empty(t, st.collections)
	assert.Empty(t, st.pity)
	assert.Len(t, st.tokens[testUser], 2, "tokens survive a pool reset")
}

func TestConfirmationWorkflow_ResetTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, workflow := newConfirmationFixture()

	workflow.RequestResetTokens(testGuild, testUser)
	outcome, err := workflow.Confirm(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Equal(t, KindResetTokens, outcome.Kind)
	assert.Equal(t, int64(2), outcome.TokenRowsGone)
	assert.Empty(t, store.state(testGuild).tokens)
}

func TestConfirmationWorkflow_ConfirmWithoutRequest(t *testing.T) {
	t.Parallel()
	_, _, workflow := newConfirmationFixture()

	_, err := workflow.Confirm(context.Background(), testGuild, testUser)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestConfirmationWorkflow_ExpiredRequestDoesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, clock, workflow := newConfirmationFixture()

	workflow.RequestResetItems(testGuild, testUser)
	clock.Advance(31 * time.Second)

	_, err := workflow.Confirm(ctx, testGuild, testUser)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Len(t, store.state(testGuild).items, 2)
}

func TestConfirmationWorkflow_OtherUserCannotConfirm(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, workflow := newConfirmationFixture()

	workflow.RequestResetTokens(testGuild, testUser)
	_, err := workflow.Confirm(ctx, testGuild, testUser+1)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.NotEmpty(t, store.state(testGuild).tokens)
}

func TestConfirmationWorkflow_Cancel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, _, workflow := newConfirmationFixture()

	assert.ErrorIs(t, workflow.Cancel(testGuild, testUser), entities.ErrNotFound)

	workflow.RequestResetItems(testGuild, testUser)
	require.NoError(t, workflow.Cancel(testGuild, testUser))

	_, err := workflow.Confirm(ctx, testGuild, testUser)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Len(t, store.state(testGuild).items, 2)
}

func TestStartConfirmationSweeper(t *testing.T) {
	t.Parallel()

	clock := newManualClock()
	gate := NewConfirmationGate(clock, time.Second)
	gate.Request(testGuild, testUser, KindResetItems, "")
	clock.Advance(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := StartConfirmationSweeper(ctx, gate, 10*time.Millisecond)
	defer stop()

	assert.Eventually(t, func() bool {
		return gate.PendingCount() == 0
	}, time.Second, 10*time.Millisecond)
}
